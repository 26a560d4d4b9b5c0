package formation

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/ports"
)

// Train refits the model from the attached sample corpus. Without a corpus,
// or with an empty one, it does nothing. The model is trained on a copy and
// only swapped in on success, so a failed Train (ErrTraining) leaves every
// position unchanged.
func (f *Formation) Train() error {
	start := time.Now()
	n := f.samples.Len()
	if n == 0 {
		f.fireTrain(0, start, true, nil)
		return nil
	}

	set := f.trainingSet()
	candidate := f.model.Clone()
	if err := candidate.Train(set); err != nil {
		if !errors.Is(err, domain.ErrTraining) {
			err = fmt.Errorf("%w: %v", domain.ErrTraining, err)
		}
		f.logger.Warn("training failed, keeping previous parameters", "method", f.MethodName(), "samples", n, "err", err)
		f.fireTrain(n, start, false, err)
		return err
	}

	f.model = candidate
	f.logger.Info("formation trained", "method", f.MethodName(), "samples", n, "duration", time.Since(start))
	f.fireTrain(n, start, false, nil)
	return nil
}

// trainingSet groups the corpus by independent role. A mirrored slot's
// observation is reflected onto the role it mirrors, and Center observations
// with a focus on the y > 0 half are reflected onto the other half.
func (f *Formation) trainingSet() ports.TrainingSet {
	set := ports.TrainingSet{
		Roles:        f.roles,
		Observations: make(map[int][]ports.Observation),
	}

	for _, s := range f.samples.All() {
		set.SampleCount++
		for unum := 1; unum <= domain.MaxPlayer; unum++ {
			role, _ := f.roles.Get(unum)
			obs := ports.Observation{Focus: s.Focus, Position: s.Player(unum)}
			target := unum

			switch {
			case role.Type.IsSymmetry():
				target = role.Type.Ref()
				obs = reflect(obs)
			case role.Type.IsCenter() && obs.Focus.Y > 0:
				obs = reflect(obs)
			}

			if f.roles.Name(target) == "" {
				continue
			}
			set.Observations[target] = append(set.Observations[target], obs)
		}
	}
	return set
}

func reflect(o ports.Observation) ports.Observation {
	return ports.Observation{Focus: o.Focus.ReverseY(), Position: o.Position.ReverseY()}
}

func (f *Formation) fireTrain(n int, start time.Time, skipped bool, err error) {
	if f.hooks.OnTrain == nil {
		return
	}
	f.hooks.OnTrain(&domain.TrainEvent{
		EventBase: f.base(domain.EventTrain),
		Samples:   n,
		Duration:  time.Since(start),
		Skipped:   skipped,
		Err:       err,
	})
}

/*
Package samples holds the training corpus consumed by trainable formations.

A DataSet is a list of samples, each mapping a focus point (usually the ball)
to the 11 observed player positions. A DataSet is meant to be shared: a
formation, an external trainer and an inspector may all hold the same
pointer, so every method is safe for concurrent use and readers receive
copies rather than views into the internal slice.
*/
package samples

package formation_test

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/geom"

	_ "github.com/aretw0/formation/pkg/models"
)

// ExampleCreate builds the default 4-3-3 and queries a mirrored pair.
func ExampleCreate() {
	f, err := formation.Create("Static")
	if err != nil {
		log.Fatal(err)
	}
	if err := f.CreateDefaultData(); err != nil {
		log.Fatal(err)
	}

	ball := geom.V(0, 0)
	fmt.Println(f.RoleName(4), f.Position(4, ball))
	fmt.Println(f.RoleName(5), f.Position(5, ball), "mirrors", f.SymmetryCode(5))
	// Output:
	// SideBack (-18.00, -18.00)
	// SideBack (-18.00, 18.00) mirrors 4
}

// ExampleDecode shows the document's type tag selecting the model.
func ExampleDecode() {
	doc := `# a tiny Static document
Static 1
Begin Roles
1 0 Goalie
2 -1 Back
3 2 Back
4 -1 -
5 -1 -
6 -1 -
7 -1 -
8 -1 -
9 -1 -
10 -1 -
11 -1 -
End Roles
Begin Static
1 -50 0
2 -20 -10
End Static
`
	f, err := formation.Decode(strings.NewReader(doc))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(f.MethodName(), f.Position(3, geom.V(10, 10)))

	if err := f.PrintComment(os.Stdout, "decoded"); err != nil {
		log.Fatal(err)
	}
	// Output:
	// Static (-20.00, 10.00)
	// # decoded
}

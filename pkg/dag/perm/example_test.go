package perm_test

import (
	"fmt"

	"github.com/matzehuels/stackchart/pkg/dag/perm"
)

func ExampleGenerate() {
	for _, p := range perm.Generate(3, 0) {
		fmt.Println(p)
	}
	// Output:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleApply() {
	column := []string{"coal", "gas", "solar"}
	fmt.Println(perm.Apply(column, []int{2, 0, 1}))
	// Output:
	// [solar coal gas]
}

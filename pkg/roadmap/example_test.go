package roadmap_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/epicroadmap/pkg/roadmap"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

func ExampleRunner_Run() {
	runner := roadmap.NewRunner(log.NewWithOptions(io.Discard, log.Options{}))

	res, err := runner.Run(context.Background(), roadmap.Input{
		Links: []tree.Link{
			tree.NewLink(tree.Root, 10),
			tree.NewLink(10, 20),
			tree.NewLink(20, 30),
			tree.NewLink(30, 31),
		},
		WorkItems: []tree.WorkItem{
			{ID: 10, Type: "Epic"},
			{ID: 20, Type: "Feature"},
			{ID: 30, Type: "User Story"},
			{ID: 31, Type: "Bug"},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	// The bug sits at the same backlog level as the story, so it moves up
	// next to it.
	fmt.Println(res.Normalized.Children(20))
	fmt.Println(res.Stats.NormalizedNodes, "work items")
	// Output:
	// [30 31]
	// 4 work items
}

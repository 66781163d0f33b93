package nest_test

import (
	"context"
	"fmt"
	"log"

	nest "github.com/AlexVanMeegen/nest-simulator"
	"github.com/AlexVanMeegen/nest-simulator/layer"
	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/models"
)

func Example() {
	k, err := nest.New(nest.WithThreads(2))
	if err != nil {
		log.Fatal(err)
	}
	if err := k.RegisterModel(models.NewStaticModel("neuron", model.KindRegular)); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	l, err := k.CreateLayer(ctx, layer.Spec{
		Elements: []layer.Element{{Model: "neuron"}},
		Columns:  2,
		Rows:     2,
		Extent:   []float64{2, 2},
	})
	if err != nil {
		log.Fatal(err)
	}

	entries, err := k.GlobalPositions(ctx, l)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range entries {
		fmt.Printf("%d: %s\n", e.GID, e.Pos)
	}

	// Output:
	// 0: (-0.5, 0.5)
	// 1: (-0.5, -0.5)
	// 2: (0.5, 0.5)
	// 3: (0.5, -0.5)
}

func ExampleKernel_PositionTree() {
	k, err := nest.New()
	if err != nil {
		log.Fatal(err)
	}
	if err := k.RegisterModel(models.NewStaticModel("neuron", model.KindRegular)); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	l, err := k.CreateLayer(ctx, layer.Spec{
		Elements:  []layer.Element{{Model: "neuron"}},
		Positions: [][]float64{{0.1, 0.1}, {0.4, 0.4}, {-0.3, 0.2}},
	})
	if err != nil {
		log.Fatal(err)
	}

	tree, err := k.PositionTree(ctx, l)
	if err != nil {
		log.Fatal(err)
	}
	near := tree.InRadius(model.NewPosition(0, 0), 0.2)
	fmt.Println(len(near))

	// Output:
	// 1
}

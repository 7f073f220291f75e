// Package neat is the root of a NEAT (NeuroEvolution of Augmenting Topologies)
// library. The algorithm lives in the neat subpackage, the network decoder in
// neat/nn, snapshot persistence in neat/store and Prometheus reporting in
// neat/metrics.
//
// Basic usage:
//
//	config := neat.DefaultConfig()
//	ga := neat.NewGeneticAlgorithm(config, neat.NewSource(42))
//
//	nodes := []neat.NodeGene{
//		neat.NewNodeGene(0, neat.InputNode),
//		neat.NewNodeGene(1, neat.InputNode),
//		neat.NewNodeGene(2, neat.OutputNode),
//	}
//	links := []neat.ConnectionGene{neat.NewConnectionGene(0, 2, 1.0, true)}
//	ga.Innovate(links) // once, before the first population
//
//	pop, err := neat.NewPopulation(config.Neat.PopSize, neat.NewGenome(nodes, links), ga)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//	for i := 0; i < 100; i++ {
//		for _, g := range pop.Genomes() {
//			out, _ := nn.Decode(g).Activate([]float64{1, 0})
//			g.SetFitness(score(out))
//		}
//		if pop, err = pop.Evolve(); err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//	}
package neat

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: compare_timelines <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine := calculation.NewCalculationEngine()
	res, err := engine.RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Find the longest timeline; shorter scenarios print blanks once finished
	maxLen := 0
	for _, s := range res.Scenarios {
		maxLen = max(maxLen, len(s.Timeline))
	}
	if maxLen == 0 {
		fmt.Println("no yearly balances")
		return
	}

	fmt.Printf("%-5s", "year")
	for _, s := range res.Scenarios {
		fmt.Printf(" %18.18s", s.Name)
	}
	fmt.Println()

	leader := ""
	for y := 0; y < maxLen; y++ {
		fmt.Printf("%-5d", y+1)
		best, bestName := -1.0, ""
		for _, s := range res.Scenarios {
			if y >= len(s.Timeline) {
				fmt.Printf(" %18s", "")
				continue
			}
			bal := s.Timeline[y].EndOfYearBalance
			fmt.Printf(" %18.2f", bal)
			if bal > best {
				best, bestName = bal, s.Name
			}
		}
		if bestName != leader && leader != "" {
			fmt.Printf("  <- %s overtakes %s", bestName, leader)
		}
		leader = bestName
		fmt.Println()
	}
}

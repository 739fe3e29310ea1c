package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/samber/lo"
)

func main() {
	students := flag.Int("students", 100, "number of students to generate")
	courseList := flag.String("courses", "Fußball;Basketball;Frisbee;Volleyball;Tennis;Handball;Hockey", "semicolon-separated course names")
	out := flag.String("out", "students.csv", "output file")
	seed := flag.Uint64("seed", 0, "random seed; 0 picks one")
	flag.Parse()

	courses := lo.Compact(strings.Split(*courseList, ";"))
	if len(courses) == 0 || *students < 0 {
		log.Fatalf("at least one course and a non-negative student count are required")
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	if *seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'
	defer writer.Flush()

	if err := writer.Write(append([]string{""}, courses...)); err != nil {
		log.Fatalf("cannot write CSV header: %v", err)
	}

	for i := range *students {
		// Every student ranks up to five courses and leaves the rest blank
		options := make([]string, len(courses))
		for rank := 1; rank <= min(5, len(courses)); rank++ {
			options[rank-1] = fmt.Sprint(rank)
		}
		rng.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		record := append([]string{fmt.Sprintf("student_%v", i)}, options...)
		if err := writer.Write(record); err != nil {
			log.Fatalf("cannot write CSV record: %v", err)
		}
	}

	fmt.Printf("Wrote %v students over %v courses to %v\n", *students, len(courses), *out)
}

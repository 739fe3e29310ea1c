package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/golang/glog"
	"github.com/limaJavier/distributing/internal/model"
	"github.com/limaJavier/distributing/internal/solver"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Exitf("%v", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "distributing",
		Short: "Distribute students over courses along their ranked preferences",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setConfigPath()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCommand())
	root.AddCommand(newConvertCommand())
	return root
}

type solveOptions struct {
	solverName string
	timeLimit  time.Duration
	courses    int
	minLoad    int
	maxLoad    int
	hard       bool
	penalty    int
	format     string
	out        string
}

func newSolveCommand() *cobra.Command {
	options := solveOptions{}

	command := &cobra.Command{
		Use:   "solve <input>",
		Short: "Solve a preference CSV or fact file and print the assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], options)
		},
	}

	flags := command.Flags()
	flags.StringVar(&options.solverName, "solver", "cpsat", fmt.Sprintf("engine to use: allowed values are %v", solver.Names()))
	flags.DurationVar(&options.timeLimit, "time-limit", 30*time.Second, "solving time limit")
	flags.IntVar(&options.courses, "courses-per-student", 1, "courses assigned to every student (overrides the input file)")
	flags.IntVar(&options.minLoad, "min-students-per-course", 10, "minimum load of an open course (overrides the input file)")
	flags.IntVar(&options.maxLoad, "max-students-per-course", 30, "maximum load of a course (overrides the input file)")
	flags.BoolVar(&options.hard, "hard-preferences", false, "forbid out-of-preference assignments (overrides the input file)")
	flags.IntVar(&options.penalty, "out-of-preference-penalty", 20, "objective cost of an out-of-preference assignment (overrides the input file)")
	flags.StringVar(&options.format, "format", "text", `output format: "text" or "csv"`)
	flags.StringVarP(&options.out, "out", "o", "", "write the report to this file instead of the standard output")
	return command
}

func runSolve(cmd *cobra.Command, path string, options solveOptions) error {
	engine, err := solver.New(options.solverName)
	if err != nil {
		return err
	}
	if options.format != "text" && options.format != "csv" {
		return fmt.Errorf("\"%v\" is not a valid format: allowed values are [csv text]", options.format)
	}

	config := model.DefaultConfig()
	input, err := loadInput(path, &config)
	if err != nil {
		return err
	}

	//** Explicitly set flags override the input file configuration
	flags := cmd.Flags()
	config.TimeLimit = options.timeLimit
	if flags.Changed("courses-per-student") {
		config.CoursesPerStudent = options.courses
	}
	if flags.Changed("min-students-per-course") {
		config.MinStudentsPerCourse = options.minLoad
	}
	if flags.Changed("max-students-per-course") {
		config.MaxStudentsPerCourse = options.maxLoad
	}
	if flags.Changed("hard-preferences") {
		config.HardPreferences = options.hard
	}
	if flags.Changed("out-of-preference-penalty") {
		config.OutOfPreferencePenalty = options.penalty
	}
	if err := config.Validate(); err != nil {
		return err
	}

	// A csv report on the standard output stays clean of surrounding chatter
	chatty := options.format != "csv" || options.out != ""
	if chatty {
		fmt.Printf("Configuration:\n")
		fmt.Printf("  Solver: %v\n", engine.Name())
		fmt.Printf("  Courses per student: %v\n", config.CoursesPerStudent)
		fmt.Printf("  Max students per course: %v\n", config.MaxStudentsPerCourse)
		fmt.Printf("  Min students per course: %v\n", config.MinStudentsPerCourse)
		fmt.Printf("  Hard enforce preferences: %v\n", config.HardPreferences)
		fmt.Printf("  Time limit: %v\n", config.TimeLimit)
		fmt.Println()
	}

	distributor := model.NewDistributor(engine)
	outcome, err := distributor.Distribute(input, config)
	if err != nil {
		return err
	}
	if outcome.Solved() && !distributor.Verify(outcome, input, config) {
		return fmt.Errorf("engine %v returned an invalid distribution", engine.Name())
	}

	rendered := model.RenderText(outcome, input)
	if options.format == "csv" && outcome.Solved() {
		rendered = model.RenderCSV(outcome)
	}
	if err := writeOutput(options.out, rendered); err != nil {
		return err
	}

	if chatty {
		fmt.Printf("Time taken: %v\n", outcome.Runtime.Round(time.Millisecond))
	}
	if !outcome.Solved() {
		return fmt.Errorf("no assignment found: %v", strings.ToLower(outcome.Status.String()))
	}
	return nil
}

func newConvertCommand() *cobra.Command {
	var out string

	command := &cobra.Command{
		Use:   "convert <input.csv>",
		Short: "Translate a preference CSV into a logic-programming fact file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], out)
		},
	}
	command.Flags().StringVarP(&out, "out", "o", "", "output path; defaults to the input path with an .lp extension")
	return command
}

func runConvert(path, out string) error {
	input, err := model.ParsePreferencesFile(path)
	if err != nil {
		return err
	}
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".lp"
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer file.Close()

	if err := model.WriteFacts(file, input, model.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Wrote %v courses and %v students to %v\n", len(input.Courses), len(input.Students), out)
	return nil
}

func loadInput(path string, config *model.Config) (model.Input, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return model.ParsePreferencesFile(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return model.Input{}, fmt.Errorf("cannot open input file: %w", err)
	}
	defer file.Close()
	return model.ParseFacts(file, config)
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}
	return nil
}

// setConfigPath points the engine wrappers at a config.json beside the
// executable, when one exists. Engines fall back to $PATH lookups otherwise.
func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	configPath := filepath.Join(filepath.Dir(execPath), "config.json")
	if _, err := os.Stat(configPath); err == nil {
		solver.ConfigPath = configPath
	}
}

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/limaJavier/distributing/internal/model"
	"github.com/limaJavier/distributing/internal/solver"
	"github.com/sirupsen/logrus"
)

func (server *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "only GET requests allowed", http.StatusMethodNotAllowed)
		return
	}

	data := struct {
		Engines       []string
		DefaultEngine string
	}{
		Engines:       solver.Names(),
		DefaultEngine: server.defaultEngine,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		server.logger.WithError(err).Error("cannot render the form")
	}
}

func (server *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST requests allowed", http.StatusMethodNotAllowed)
		return
	}

	//** Read the bounded multipart upload
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("cannot read upload: %v", err), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("preferences")
	if err != nil {
		http.Error(w, "missing preferences file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	//** Collect the solver settings
	config := model.DefaultConfig()
	if err := configFromForm(r, &config); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	engineName := r.FormValue("engine")
	if engineName == "" {
		engineName = server.defaultEngine
	}
	engine, err := solver.New(engineName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input, err := model.ParsePreferences(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	//** Distribute and check the result before echoing it
	distributor := model.NewDistributor(engine)
	outcome, err := distributor.Distribute(input, config)
	if err != nil {
		server.logger.WithError(err).Error("distribution failed")
		http.Error(w, "distribution failed", http.StatusInternalServerError)
		return
	}
	if outcome.Solved() && !distributor.Verify(outcome, input, config) {
		server.logger.Error("engine returned an invalid distribution")
		http.Error(w, "engine returned an invalid distribution", http.StatusInternalServerError)
		return
	}

	server.logger.WithFields(logrus.Fields{
		"request_id": requestIDFrom(r.Context()),
		"engine":     engineName,
		"students":   len(input.Students),
		"courses":    len(input.Courses),
		"status":     outcome.Status.String(),
		"objective":  outcome.Objective,
		"runtime":    outcome.Runtime.String(),
	}).Info("distribution finished")

	if outcome.Solved() && r.FormValue("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="assignment.csv"`)
		fmt.Fprint(w, model.RenderCSV(outcome))
		return
	}

	data := struct {
		Solved  bool
		Report  string
		Runtime time.Duration
	}{
		Solved:  outcome.Solved(),
		Report:  model.RenderText(outcome, input),
		Runtime: outcome.Runtime,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultTemplate.Execute(w, data); err != nil {
		server.logger.WithError(err).Error("cannot render the result")
	}
}

func (server *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "only GET requests allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "course distributor",
		"engines": solver.Names(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

// configFromForm overrides config with the fields the form filled in. Blank
// fields keep their defaults.
func configFromForm(r *http.Request, config *model.Config) error {
	if err := formInt(r, "courses_per_student", &config.CoursesPerStudent); err != nil {
		return err
	}
	if err := formInt(r, "min_students_per_course", &config.MinStudentsPerCourse); err != nil {
		return err
	}
	if err := formInt(r, "max_students_per_course", &config.MaxStudentsPerCourse); err != nil {
		return err
	}
	if err := formInt(r, "out_of_preference_penalty", &config.OutOfPreferencePenalty); err != nil {
		return err
	}
	config.HardPreferences = r.FormValue("hard_preferences") != ""

	if value := r.FormValue("time_limit"); value != "" {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("time_limit must be a number of seconds")
		}
		limit := time.Duration(seconds) * time.Second
		if limit < time.Second || limit > MaxTimeLimit {
			return fmt.Errorf("time_limit must lie between 1 and %v seconds", int(MaxTimeLimit.Seconds()))
		}
		config.TimeLimit = limit
	}
	return nil
}

func formInt(r *http.Request, field string, target *int) error {
	value := r.FormValue(field)
	if value == "" {
		return nil
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%v must be an integer", field)
	}
	*target = number
	return nil
}

package web

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Course Distributor</title>
</head>
<body>
<h1>Course Distributor</h1>
<p>Upload a CSV of ranked preferences: the header row names the courses, every
other row holds a student name followed by their ranks, lower meaning more
preferred.</p>
<form action="/solve" method="post" enctype="multipart/form-data">
<p><input type="file" name="preferences" accept=".csv,text/csv" required></p>
<fieldset>
<legend>Solver settings</legend>
<p><label>Time limit (seconds) <input type="number" name="time_limit" min="1" max="300" value="30"></label></p>
<p><label>Courses per student <input type="number" name="courses_per_student" min="1" value="1"></label></p>
<p><label>Min students per course <input type="number" name="min_students_per_course" min="0" value="10"></label></p>
<p><label>Max students per course <input type="number" name="max_students_per_course" min="1" value="30"></label></p>
<p><label>Out-of-preference penalty <input type="number" name="out_of_preference_penalty" min="0" value="20"></label></p>
<p><label><input type="checkbox" name="hard_preferences" value="true"> Hard enforce preferences (disallow no-preference assignments)</label></p>
<p><label>Engine <select name="engine">{{range .Engines}}<option value="{{.}}"{{if eq . $.DefaultEngine}} selected{{end}}>{{.}}</option>{{end}}</select></label></p>
<p><label>Output <select name="format"><option value="text">text</option><option value="csv">csv</option></select></label></p>
</fieldset>
<p><button type="submit">Run solver</button></p>
</form>
<p>The upload is processed in memory and not persisted.</p>
</body>
</html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Solver output</title>
</head>
<body>
<h1>Solver output</h1>
{{if not .Solved}}<p><strong>No feasible solution or solver failed. See output below.</strong></p>{{end}}
<pre>{{.Report}}</pre>
<p>Time taken: {{.Runtime}}</p>
<p><a href="/">Back</a></p>
</body>
</html>
`))

package handler

import (
	"html/template"
	"net/http"
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Service}}</title>
</head>
<body>
  <h1>{{.Service}}</h1>
  <p id="status">checking...</p>
  <script>
    fetch("/health")
      .then(function (res) { return res.json(); })
      .then(function (data) {
        document.getElementById("status").textContent =
          data.status + " - " + data.userCount + " users";
      })
      .catch(function () {
        document.getElementById("status").textContent = "unreachable";
      });
  </script>
</body>
</html>
`))

// Home renders a minimal status page that polls /health from the browser.
//
// GET /
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The global CSP blocks inline scripts; relax it for this one page.
	w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'unsafe-inline'; connect-src 'self'")
	if err := homeTemplate.Execute(w, struct{ Service string }{Service: serviceName}); err != nil {
		_ = err
	}
}

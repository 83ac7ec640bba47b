package dashboard

import "html/template"

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// pageTemplate wraps the rendered viewer tree. The script upgrades links
// and the file selector to websocket messages when a socket is available;
// without it every interaction is a plain page load.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>` + cssContent + `</style>
</head>
<body data-mode="{{.Mode}}">
  <header class="top-bar"><h1>{{.Title}}</h1></header>
  {{.Viewer}}
  <script>` + jsContent + `</script>
</body>
</html>`

const cssContent = `
:root { --fg: #1f2328; --muted: #656d76; --border: #d0d7de; --accent: #0969da; --verb: #8250df; --bg-alt: #f6f8fa; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: var(--fg); margin: 0; }
.top-bar { padding: 0.75rem 1.5rem; border-bottom: 1px solid var(--border); }
.top-bar h1 { font-size: 1.1rem; margin: 0; }
#viewer { padding: 1rem 1.5rem; }
#file-selector { display: flex; gap: 0.5rem; align-items: flex-start; margin-bottom: 1rem; }
#file-select { min-width: 20rem; min-height: 6rem; }
#tab-list { list-style: none; display: flex; flex-wrap: wrap; gap: 0.25rem; padding: 0; margin: 0 0 1rem; border-bottom: 1px solid var(--border); }
#tab-list .tab a { display: block; padding: 0.4rem 0.8rem; text-decoration: none; color: var(--muted); border: 1px solid transparent; border-bottom: none; }
#tab-list .tab.active a { color: var(--fg); border-color: var(--border); background: #fff; font-weight: 600; }
.layout { display: grid; grid-template-columns: 16rem 1fr; gap: 1.5rem; }
#sidebar ul { list-style: none; padding: 0; margin: 0; }
.tool-link { display: block; padding: 0.4rem 0.6rem; color: var(--fg); text-decoration: none; border-radius: 6px; }
.tool-link.active-tool { background: var(--bg-alt); font-weight: 600; }
#section-content { padding: 0.75rem 1rem; background: var(--bg-alt); border-radius: 6px; margin-bottom: 1rem; }
.response { margin-bottom: 1.5rem; }
.element { padding: 0.5rem 0; border-bottom: 1px solid var(--border); }
.comparison { display: flex; gap: 1rem; padding: 0.5rem 0; border-bottom: 1px solid var(--border); }
.comparison .column { flex: 1; min-width: 0; }
.comparison h3 { font-size: 0.8rem; color: var(--muted); margin: 0 0 0.25rem; }
.placeholder { color: var(--muted); font-style: italic; }
.element-id { font-family: ui-monospace, monospace; color: var(--muted); }
.term-common { text-decoration: underline; }
.term-proper { text-decoration: underline double; }
.verb { font-style: italic; color: var(--verb); }
.classification { color: var(--accent); margin-left: 0.15rem; }
.sources { margin-left: 0.25rem; }
.feedback-box summary { cursor: pointer; color: var(--muted); font-size: 0.8rem; }
.feedback { display: flex; gap: 0.4rem; margin-top: 0.25rem; }
`

const jsContent = `
(function () {
  if (!window.WebSocket) return;
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws/view");
  var latest = 0;
  var ready = false;

  ws.onopen = function () {
    ready = true;
    var params = new URLSearchParams(location.search);
    var files = params.getAll("file");
    if (files.length) ws.send(JSON.stringify({ type: "select_files", files: files }));
    if (params.get("section")) ws.send(JSON.stringify({ type: "select_section", section: params.get("section") }));
    if (params.get("tool")) ws.send(JSON.stringify({ type: "select_tool", tool: params.get("tool") }));
  };
  ws.onclose = function () { ready = false; };
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type !== "view" || msg.generation < latest) return;
    latest = msg.generation;
    var current = document.getElementById("viewer");
    if (current) current.outerHTML = msg.html;
  };

  document.addEventListener("click", function (ev) {
    if (!ready) return;
    var a = ev.target.closest("a[data-section], a[data-tool]");
    if (!a) return;
    ev.preventDefault();
    if (a.dataset.section) ws.send(JSON.stringify({ type: "select_section", section: a.dataset.section }));
    if (a.dataset.tool) ws.send(JSON.stringify({ type: "select_tool", tool: a.dataset.tool }));
    history.replaceState(null, "", a.getAttribute("href"));
  });

  document.addEventListener("change", function (ev) {
    if (!ready || ev.target.id !== "file-select") return;
    var files = Array.prototype.filter.call(ev.target.options, function (o) { return o.selected; })
      .map(function (o) { return o.value; });
    ws.send(JSON.stringify({ type: "select_files", files: files }));
  });
})();
`

// Package templates holds the server-rendered views. Components are
// plain templ.Component values so handlers can render full pages or
// HTMX fragments with the same call.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// esc HTML-escapes dynamic values before they reach markup.
func esc(s string) string {
	return templ.EscapeString(s)
}

// urlQuery escapes a value for use inside a query string. Quote ids
// carry slashes, so they are always passed as query parameters.
func urlQuery(s string) string {
	return url.QueryEscape(s)
}

const baseStyles = `
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f3f4f6; color: #111827; }
.nav { background: #111827; color: #fff; display: flex; align-items: center; gap: 1.5rem; padding: 0.75rem 1.5rem; }
.nav a { color: #d1d5db; text-decoration: none; font-weight: 600; font-size: 0.9rem; }
.nav a:hover { color: #fff; }
.nav .brand { color: #f87171; font-weight: 800; letter-spacing: 0.05em; }
.nav .spacer { flex: 1; }
.container { max-width: 1100px; margin: 1.5rem auto; padding: 0 1rem; }
.card { background: #fff; border: 1px solid #e5e7eb; border-radius: 0.75rem; padding: 1.25rem; margin-bottom: 1.25rem; }
table.list { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
table.list th { text-align: left; text-transform: uppercase; font-size: 0.7rem; color: #6b7280; padding: 0.6rem 0.75rem; border-bottom: 1px solid #e5e7eb; }
table.list td { padding: 0.6rem 0.75rem; border-bottom: 1px solid #f3f4f6; }
.btn { display: inline-block; border: none; border-radius: 0.5rem; padding: 0.45rem 0.9rem; font-weight: 600; font-size: 0.85rem; cursor: pointer; text-decoration: none; }
.btn-primary { background: #dc2626; color: #fff; }
.btn-secondary { background: #e5e7eb; color: #111827; }
.btn-link { background: none; color: #dc2626; padding: 0.2rem 0.4rem; }
label { display: block; font-size: 0.75rem; font-weight: 700; text-transform: uppercase; color: #6b7280; margin: 0.6rem 0 0.2rem; }
input[type=text], input[type=password], input[type=number], input[type=date], select, textarea { width: 100%; box-sizing: border-box; border: 1px solid #d1d5db; border-radius: 0.4rem; padding: 0.45rem 0.6rem; font-size: 0.9rem; }
.field-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 0 1rem; }
.tabs { display: flex; gap: 0.5rem; flex-wrap: wrap; margin-bottom: 1rem; }
.tabs a { padding: 0.4rem 0.9rem; border-radius: 999px; background: #e5e7eb; color: #374151; text-decoration: none; font-size: 0.8rem; font-weight: 700; }
.tabs a.active { background: #dc2626; color: #fff; }
#toast { position: fixed; bottom: 1rem; right: 1rem; padding: 0.7rem 1.2rem; border-radius: 0.5rem; color: #fff; font-weight: 600; display: none; z-index: 50; }
#toast.success { background: #16a34a; } #toast.error { background: #dc2626; } #toast.warning { background: #d97706; }
`

const toastScript = `
function showToast(msg, type) {
  var el = document.getElementById('toast');
  el.textContent = msg; el.className = type || 'success'; el.style.display = 'block';
  setTimeout(function () { el.style.display = 'none'; }, 4000);
}
document.body.addEventListener('showToast', function (evt) {
  showToast(evt.detail.message, evt.detail.type);
});
(function () {
  var m = document.cookie.match(/(?:^|; )sq_flash=([^;]*)/);
  if (!m) return;
  try {
    var t = JSON.parse(decodeURIComponent(m[1]));
    showToast(t.message, t.type);
  } catch (e) {}
  document.cookie = 'sq_flash=; Max-Age=0; path=/';
})();
`

// Layout wraps page content in the application shell: head, nav bar and
// toast area. An empty userName renders the shell without navigation,
// which the login page uses.
func Layout(title, userName string, isAdmin bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>%s</title>`, esc(title))
		fmt.Fprintf(w, `<script src="https://unpkg.com/htmx.org@1.9.12"></script><style>%s</style></head><body>`, baseStyles)

		if userName != "" {
			fmt.Fprint(w, `<nav class="nav"><span class="brand">SOLAR QUOTE MANAGER</span>`)
			fmt.Fprint(w, `<a href="/">Dashboard</a><a href="/quotations/new">New Quotation</a><a href="/settings">Settings</a>`)
			if isAdmin {
				fmt.Fprint(w, `<a href="/reports/master">Master Report</a>`)
			}
			fmt.Fprintf(w, `<span class="spacer"></span><span style="font-size:0.8rem;color:#9ca3af">%s</span>`, esc(userName))
			fmt.Fprint(w, `<form method="post" action="/logout" style="margin:0"><button class="btn btn-link" type="submit">Logout</button></form></nav>`)
		}

		fmt.Fprint(w, `<div class="container" id="main">`)
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprintf(w, `</div><div id="toast"></div><script>%s</script></body></html>`, toastScript)
		return nil
	})
}

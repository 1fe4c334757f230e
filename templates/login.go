package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LoginPage renders the login gate. errMsg is shown above the form
// after a failed attempt.
func LoginPage(errMsg string) templ.Component {
	form := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<div class="card" style="max-width:380px;margin:4rem auto">`)
		fmt.Fprint(w, `<h2 style="margin-top:0">Sign In</h2>`)
		if errMsg != "" {
			fmt.Fprintf(w, `<p style="color:#dc2626;font-weight:600">%s</p>`, esc(errMsg))
		}
		fmt.Fprint(w, `<form method="post" action="/login">`)
		fmt.Fprint(w, `<label for="username">Username</label><input type="text" id="username" name="username" autofocus/>`)
		fmt.Fprint(w, `<label for="password">Password</label><input type="password" id="password" name="password"/>`)
		fmt.Fprint(w, `<div style="margin-top:1rem"><button class="btn btn-primary" type="submit">Login</button></div>`)
		fmt.Fprint(w, `</form></div>`)
		return nil
	})
	return Layout("Login - Solar Quote Manager", "", false, form)
}

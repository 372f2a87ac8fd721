// Package bundle turns generated JSX modules and stylesheets into output
// ready for the browser using esbuild.
package bundle

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Options configures a transform.
type Options struct {
	// Minify enables whitespace, identifier and syntax minification.
	Minify bool
	// JSXImportSource is the package providing the JSX runtime.
	// Defaults to "react".
	JSXImportSource string
}

// Result holds transformed output for one component.
type Result struct {
	JS  string
	CSS string
}

// Message is one esbuild diagnostic.
type Message struct {
	File   string
	Line   int
	Column int
	Text   string
}

func (m Message) String() string {
	if m.File == "" {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.File, m.Line, m.Column, m.Text)
}

// BundleError is returned when esbuild rejects generated code.
type BundleError struct {
	Component string
	Messages  []Message
}

func (e *BundleError) Error() string {
	lines := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		lines = append(lines, m.String())
	}
	return fmt.Sprintf("esbuild errors for %s:\n%s", e.Component, strings.Join(lines, "\n"))
}

// Component transforms a printed JSX module and its stylesheet. name is
// the component function name and labels diagnostics.
func Component(name, module, css string, opts Options) (*Result, error) {
	js, err := TransformJSX(name, module, opts)
	if err != nil {
		return nil, err
	}
	out, err := TransformCSS(name, css, opts)
	if err != nil {
		return nil, err
	}
	return &Result{JS: js, CSS: out}, nil
}

// TransformJSX compiles a JSX module to an ES module using the automatic
// JSX runtime. Imports are left in place.
func TransformJSX(name, module string, opts Options) (string, error) {
	importSource := opts.JSXImportSource
	if importSource == "" {
		importSource = "react"
	}

	transformOpts := api.TransformOptions{
		Sourcefile:      name + ".jsx",
		Loader:          api.LoaderJSX,
		JSX:             api.JSXAutomatic,
		JSXImportSource: importSource,
		Format:          api.FormatESModule,
		Target:          api.ES2020,
		LogLevel:        api.LogLevelSilent,
	}
	if opts.Minify {
		transformOpts.MinifyWhitespace = true
		transformOpts.MinifyIdentifiers = true
		transformOpts.MinifySyntax = true
	}

	result := api.Transform(module, transformOpts)
	if len(result.Errors) > 0 {
		return "", newBundleError(name, result.Errors)
	}
	return string(result.Code), nil
}

// TransformCSS validates a stylesheet and, when requested, minifies it.
func TransformCSS(name, css string, opts Options) (string, error) {
	transformOpts := api.TransformOptions{
		Sourcefile: name + ".css",
		Loader:     api.LoaderCSS,
		LogLevel:   api.LogLevelSilent,
	}
	if opts.Minify {
		transformOpts.MinifyWhitespace = true
		transformOpts.MinifySyntax = true
	}

	result := api.Transform(css, transformOpts)
	if len(result.Errors) > 0 {
		return "", newBundleError(name, result.Errors)
	}
	return string(result.Code), nil
}

func newBundleError(component string, msgs []api.Message) *BundleError {
	e := &BundleError{Component: component}
	for _, m := range msgs {
		msg := Message{Text: m.Text}
		if m.Location != nil {
			msg.File = m.Location.File
			msg.Line = m.Location.Line
			msg.Column = m.Location.Column
		}
		e.Messages = append(e.Messages, msg)
	}
	return e
}

// Package core defines the shared language of the leapui compiler.
//
// This package contains:
//   - Reference tables (colors, font sizes, font families, font weights,
//     line heights, breakpoints) addressed by opaque IDs
//   - The layer tree model (container, text, link, image and component layers)
//   - Components, their declared props and prop bindings
//   - The Document aggregate handed to the compiler
//   - The compile error taxonomy
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core

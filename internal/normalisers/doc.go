// Package normalisers turns source formats into what the pipeline and its
// front ends consume.
//
//   - markdown: the document transformer, markdown + frontmatter to a
//     processed document
//   - html: rendered HTML back to readable terminal text
package normalisers

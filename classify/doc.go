// Package classify decides how a slide's content lines should be rendered.
//
// Three shapes exist, checked in this order:
//
//   - [CodeBlock] when at least max(2, n/2) of the n lines look like source
//     code (markup tags, braces or semicolons, language keywords)
//   - [Table] when there are at least two lines and every line contains a
//     colon; each line becomes a key/value [Row]
//   - [BulletList] otherwise
//
// Code detection is a majority vote because snippets mix in comments and
// structural lines. Table detection is unanimous because a single line
// without a colon usually means the content is prose.
package classify

// Package document renders ordered content blocks into self-contained
// HTML pages for sandboxed iframe embedding.
//
// Two shapes are produced: a full document combining every block, and
// standalone per-block pages. Both inline all styling and scripting;
// the only external references are pinned cdnjs assets for KaTeX and
// plotly.js. Output can additionally be wrapped as JSON or compressed
// with zlib and base64 for transport.
package document

package document

import "fmt"

// Pinned CDN library versions. Rendered documents are self-contained
// except for these cdnjs assets.
const (
	KatexVersion  = "0.16.8"
	PlotlyVersion = "2.26.0"
)

func katexStylesheet() string {
	return fmt.Sprintf(`    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/KaTeX/%s/katex.min.css">`, KatexVersion)
}

func katexScripts() string {
	return fmt.Sprintf(`    <script src="https://cdnjs.cloudflare.com/ajax/libs/KaTeX/%s/katex.min.js"></script>
    <script src="https://cdnjs.cloudflare.com/ajax/libs/KaTeX/%s/contrib/auto-render.min.js"></script>`, KatexVersion, KatexVersion)
}

func plotlyScript() string {
	return fmt.Sprintf(`    <script src="https://cdnjs.cloudflare.com/ajax/libs/plotly.js/%s/plotly.min.js"></script>`, PlotlyVersion)
}

// mathRenderJS typesets LaTeX delimiters on standalone block pages.
const mathRenderJS = `            renderMathInElement(document.body, {
                delimiters: [
                    {left: "$$", right: "$$", display: true},
                    {left: "$", right: "$", display: false},
                    {left: "\(", right: "\)", display: false},
                    {left: "\[", right: "\]", display: true}
                ],
                throwOnError: false,
                errorColor: "#cc0000"
            });`

// mathRenderGuardedJS is the full-document variant. It tolerates the
// KaTeX script failing to load instead of throwing on the whole page.
const mathRenderGuardedJS = `            if (typeof renderMathInElement !== "undefined") {
                renderMathInElement(document.body, {
                    delimiters: [
                        {left: "$$", right: "$$", display: true},
                        {left: "$", right: "$", display: false},
                        {left: "\(", right: "\)", display: false},
                        {left: "\[", right: "\]", display: true}
                    ],
                    throwOnError: false
                });
            }`

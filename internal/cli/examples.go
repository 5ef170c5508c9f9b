package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quizframe/pkg/manifest"
)

// newExamplesCmd creates the examples command. It writes a set of
// example manifests together with their full-document renders, useful
// as starting points and for eyeballing the output in a browser.
func newExamplesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Generate example manifests and their renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExamples(cmd.Context(), dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "output", "o", "examples", "output directory")

	return cmd
}

func runExamples(ctx context.Context, dir string) error {
	logger := loggerFromContext(ctx)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fmt.Println(styleTitle.Render("Generating examples"))
	examples := exampleDocuments()

	p := newProgress(logger)
	for _, ex := range examples {
		if err := writeExample(dir, ex.name, ex.doc); err != nil {
			printError("%s: %v", ex.name, err)
			return err
		}
	}
	p.done(fmt.Sprintf("Generated %d examples", len(examples)))

	printNextStep("Render one yourself", fmt.Sprintf("%s render %s", appName, filepath.Join(dir, "math_question.json")))
	return nil
}

// writeExample writes the manifest and its rendered document.
func writeExample(dir, name string, doc *manifest.Document) error {
	jsonPath := filepath.Join(dir, name+".json")
	f, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	if err := doc.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(jsonPath, false)

	comp, err := doc.Composer()
	if err != nil {
		return err
	}
	htmlPath := filepath.Join(dir, name+".html")
	if err := os.WriteFile(htmlPath, []byte(comp.RenderDocument(false)), 0o644); err != nil {
		return err
	}
	printFile(htmlPath, false)
	return nil
}

type example struct {
	name string
	doc  *manifest.Document
}

func exampleDocuments() []example {
	return []example{
		{"math_question", mathQuestionExample()},
		{"data_analysis", dataAnalysisExample()},
		{"statistics", statisticsExample()},
		{"pie_chart", pieChartExample()},
		{"table", tableExample()},
		{"combined_report", combinedReportExample()},
	}
}

// mathQuestionExample pairs a LaTeX question with a plot of the function
// under discussion.
func mathQuestionExample() *manifest.Document {
	x := make([]float64, 100)
	y := make([]float64, 100)
	for i := range x {
		x[i] = -1 + 6*float64(i)/99
		y[i] = x[i]*x[i] - 4*x[i] + 3
	}

	blocks := []manifest.Block{
		{Type: "text", ContentType: "question", Content: "<h3>Function Analysis</h3><p>Consider the quadratic function: $$f(x) = ax^2 + bx + c$$</p><p>Where $a = 1$, $b = -4$, and $c = 3$</p>"},
		{Type: "chart", Chart: &manifest.Chart{
			Kind:   "line",
			Title:  "f(x) = x² - 4x + 3",
			XLabel: "x",
			YLabel: "f(x)",
			Color:  "#2e86c1",
			X:      x,
			Y:      y,
		}},
		{Type: "text", Content: "Based on the graph above, what are the x-intercepts of this function?"},
	}
	options := []string{
		"$x = 1$ and $x = 3$",
		"$x = 2$ and $x = 4$",
		"$x = 0$ and $x = 2$",
		"$x = -1$ and $x = 5$",
	}
	for _, opt := range options {
		blocks = append(blocks, manifest.Block{Type: "text", ContentType: "option", Content: opt})
	}

	return &manifest.Document{Title: "Math Question", Blocks: blocks}
}

func dataAnalysisExample() *manifest.Document {
	blocks := []manifest.Block{
		{Type: "text", ContentType: "question", Content: "<h3>Sales Data Analysis</h3><p>The chart below shows the monthly sales data for a company over 6 months.</p><p>Which month showed the highest percentage increase compared to the previous month?</p>"},
		{Type: "chart", Chart: &manifest.Chart{
			Kind:   "bar",
			Title:  "Monthly Sales Data",
			XLabel: "Month",
			YLabel: "Sales ($)",
			Color:  "#27ae60",
			Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
			Values: []float64{12000, 15000, 14000, 18000, 22000, 25000},
		}},
	}
	options := []string{"February (+25%)", "March (-6.7%)", "April (+28.6%)", "May (+22.2%)"}
	for _, opt := range options {
		blocks = append(blocks, manifest.Block{Type: "text", ContentType: "option", Content: "<p><strong>" + opt + "</strong></p>"})
	}

	return &manifest.Document{Title: "Data Analysis Question", Blocks: blocks}
}

// statisticsExample uses a fixed seed so regenerated manifests stay
// byte-identical across runs.
func statisticsExample() *manifest.Document {
	rng := rand.New(rand.NewSource(42))
	scores := make([]float64, 100)
	for i := range scores {
		scores[i] = 78 + 12*rng.NormFloat64()
	}

	blocks := []manifest.Block{
		{Type: "text", ContentType: "question", Content: `<h3>Statistical Distribution</h3><p>The histogram below shows the distribution of test scores for a class of students.</p><p>Based on a normal distribution: $$\mu = \frac{1}{n}\sum_{i=1}^{n} x_i$$</p>`},
		{Type: "chart", Chart: &manifest.Chart{
			Kind:   "histogram",
			Title:  "Test Score Distribution",
			XLabel: "Score",
			Values: scores,
			Bins:   15,
		}},
	}
	options := []string{"Approximately 65", "Approximately 78", "Approximately 85", "Approximately 92"}
	for _, opt := range options {
		blocks = append(blocks, manifest.Block{Type: "text", ContentType: "option", Content: opt})
	}

	return &manifest.Document{Title: "Statistics Question", Blocks: blocks}
}

func pieChartExample() *manifest.Document {
	blocks := []manifest.Block{
		{Type: "text", ContentType: "question", Content: "<h3>Market Share Analysis</h3><p>The pie chart below shows the market share of different smartphone brands.</p><p>Which brand has the second-largest market share?</p>"},
		{Type: "chart", Chart: &manifest.Chart{
			Kind:   "pie",
			Title:  "Smartphone Market Share",
			Labels: []string{"Brand A", "Brand B", "Brand C", "Brand D", "Others"},
			Values: []float64{35, 28, 18, 12, 7},
		}},
	}
	for _, opt := range []string{"Brand A", "Brand B", "Brand C", "Brand D"} {
		blocks = append(blocks, manifest.Block{Type: "text", ContentType: "option", Content: opt})
	}

	return &manifest.Document{Title: "Pie Chart Question", Blocks: blocks}
}

func tableExample() *manifest.Document {
	return &manifest.Document{
		Title: "Table Example",
		Blocks: []manifest.Block{
			{Type: "text", Content: "<h3>Here is a table of student data:</h3>"},
			{Type: "table",
				Headers: []string{"ID", "Name", "Grade"},
				Rows: [][]any{
					{1, "Alice", 85},
					{2, "Bob", 92},
					{3, "Charlie", 78},
				}},
		},
	}
}

func combinedReportExample() *manifest.Document {
	return &manifest.Document{
		Title: "Combined Report",
		Blocks: []manifest.Block{
			{Type: "text", Content: "<h2>Combined Report</h2>"},
			{Type: "text", Content: "<p>This report contains a bar chart, a pie chart, and a data table.</p>"},
			{Type: "chart", Chart: &manifest.Chart{
				Kind:   "bar",
				Title:  "Bar Chart",
				Labels: []string{"A", "B", "C", "D", "E", "F"},
				Values: []float64{10, 12, 15, 25, 20, 22},
			}},
			{Type: "chart", Chart: &manifest.Chart{
				Kind:   "pie",
				Title:  "Pie Chart",
				Labels: []string{"X", "Y", "Z"},
				Values: []float64{40, 30, 30},
			}},
			{Type: "table",
				Headers: []string{"Product", "Price", "In Stock"},
				Rows: [][]any{
					{"Apple", 1.50, true},
					{"Banana", 4.75, true},
					{"Orange", 1.25, false},
					{"Mango", 1.75, false},
				}},
		},
	}
}

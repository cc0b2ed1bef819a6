package obsidian2html_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	obsidian2html "github.com/alnah/go-obsidian2html"
)

// Example demonstrates basic markdown to HTML conversion.
func Example() {
	conv, err := obsidian2html.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "# Hello World\n\nThis is a test.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Check that HTML was generated
	if strings.Contains(string(result.HTML), "<h1") {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}

// Example_withLinkIndex demonstrates resolving wikilinks against a vault
// index.
func Example_withLinkIndex() {
	index := obsidian2html.NewLinkIndex(map[string][]string{
		"home": {"/docs/home"},
	})

	conv, err := obsidian2html.New(obsidian2html.WithLinkIndex(index))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "Go back [[home|Home]].",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(string(result.HTML), `href="/docs/home"`) {
		fmt.Println("Wikilink resolved")
	}
	// Output: Wikilink resolved
}

// Example_embeds demonstrates image embeds with size specs.
func Example_embeds() {
	conv, err := obsidian2html.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "# Diagram\n\n![[architecture.png|600]]",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(string(result.HTML), `width="600"`) {
		fmt.Println("Embed rendered with size")
	}
	// Output: Embed rendered with size
}

// Example_tags demonstrates inline tag rendering.
func Example_tags() {
	conv, err := obsidian2html.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "Filed under #projects for later.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(string(result.HTML), `class="tag"`) {
		fmt.Println("Tag rendered")
	}
	// Output: Tag rendered
}

// Example_withCustomCSS demonstrates injecting custom CSS.
func Example_withCustomCSS() {
	conv, err := obsidian2html.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "# Styled Document\n\nCustom styling applied.",
		CSS: `
			body { font-family: Palatino, serif; }
			h1 { color: #2c3e50; border-bottom: 2px solid #3498db; }
		`,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(string(result.HTML), "Palatino") {
		fmt.Println("Custom CSS injected")
	}
	// Output: Custom CSS injected
}

// Example_fragment demonstrates fragment mode without the page wrap.
func Example_fragment() {
	conv, err := obsidian2html.New(obsidian2html.WithoutPageWrap())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "# Embedded\n\nFor inclusion in a larger page.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	html := string(result.HTML)
	if strings.Contains(html, "<h1") && !strings.Contains(html, "<html") {
		fmt.Println("Fragment only")
	}
	// Output: Fragment only
}

// ExampleNew_withStyle demonstrates using a built-in style.
func ExampleNew_withStyle() {
	conv, err := obsidian2html.New(obsidian2html.WithStyle("plain"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "# Plain Document\n\nUsing the plain style.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Plain style uses a Georgia serif stack
	if strings.Contains(string(result.HTML), "Georgia") {
		fmt.Println("Plain style applied")
	}
	// Output: Plain style applied
}

// ExampleParseWikiLink demonstrates parsing wikilink syntax.
func ExampleParseWikiLink() {
	link := obsidian2html.ParseWikiLink("Guides/Setup#Install|How to install")

	fmt.Println(link.Path)
	fmt.Println(link.Display)
	fmt.Println(link.Anchor)
	// Output:
	// Guides/Setup
	// How to install
	// Install
}

// ExamplePreprocess demonstrates embed rewriting.
func ExamplePreprocess() {
	out := obsidian2html.Preprocess("![[chart.png|500]]", obsidian2html.PreprocessOptions{})

	fmt.Println(out)
	// Output: ![chart.png|500x0](/attachments/chart.png){.obsidian-embed}
}

// ExampleResolveDate demonstrates automatic date formatting.
func ExampleResolveDate() {
	t := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	date, err := obsidian2html.ResolveDate("auto:journal", t)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(date)
	// Output: Friday, March 15, 2024
}

// ExampleListLinks demonstrates scanning a document for link occurrences.
func ExampleListLinks() {
	refs := obsidian2html.ListLinks("See [[alpha]] and ![[img.png]].")

	for _, ref := range refs {
		fmt.Println(ref.Line, ref.Col, ref.Path, ref.Embed)
	}
	// Output:
	// 1 5 alpha false
	// 1 19 img.png true
}

// ExampleConverterPool demonstrates parallel batch processing.
func ExampleConverterPool() {
	pool := obsidian2html.NewConverterPool(2)

	// Process two documents in parallel
	docs := []string{
		"# Document 1\n\nFirst document.",
		"# Document 2\n\nSecond document.",
	}

	// Channel to collect results, WaitGroup to synchronize goroutines
	results := make(chan bool, len(docs))
	var wg sync.WaitGroup

	for _, doc := range docs {
		wg.Add(1)
		go func(markdown string) {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				results <- false
				return
			}
			defer pool.Release(conv)

			result, err := conv.Convert(context.Background(), obsidian2html.Input{
				Markdown: markdown,
			})
			results <- err == nil && strings.Contains(string(result.HTML), "Document")
		}(doc)
	}

	// Wait for all goroutines to finish before closing pool
	wg.Wait()
	pool.Close()

	// Collect results
	success := 0
	for range docs {
		if <-results {
			success++
		}
	}
	fmt.Printf("Processed %d documents\n", success)
	// Output: Processed 2 documents
}

// ExampleNewAssetLoader demonstrates loading custom assets.
func ExampleNewAssetLoader() {
	// NewAssetLoader with empty path uses embedded assets only
	loader, err := obsidian2html.NewAssetLoader("")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	conv, err := obsidian2html.New(obsidian2html.WithAssetLoader(loader))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), obsidian2html.Input{
		Markdown: "# Custom Assets\n\nUsing asset loader.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if len(result.HTML) > 0 {
		fmt.Println("Asset loader configured")
	}
	// Output: Asset loader configured
}

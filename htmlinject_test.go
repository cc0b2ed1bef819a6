package obsidian2html

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no escape needed",
			input:    "body { color: red; }",
			expected: "body { color: red; }",
		},
		{
			name:     "escapes style close",
			input:    "</style>",
			expected: `<\/style>`,
		},
		{
			name:     "escapes embedded close mid-rule",
			input:    "p { } </style><script>",
			expected: `p { } <\/style><script>`,
		},
		{
			name:     "open tags untouched",
			input:    "<style> p { }",
			expected: "<style> p { }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeCSS(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty CSS returns HTML unchanged",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "",
			expected: "<html><head></head><body>Hello</body></html>",
		},
		{
			name:     "injects before </head>",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "body { color: red; }",
			expected: "<html><head><style>body { color: red; }</style></head><body>Hello</body></html>",
		},
		{
			name:     "injects before </HEAD> mixed case",
			html:     "<html><HEAD></HEAD><body>Hello</body></html>",
			css:      "body { color: red; }",
			expected: "<html><HEAD><style>body { color: red; }</style></HEAD><body>Hello</body></html>",
		},
		{
			name:     "injects after <body> when no </head>",
			html:     "<html><body>Hello</body></html>",
			css:      "body { color: red; }",
			expected: "<html><body><style>body { color: red; }</style>Hello</body></html>",
		},
		{
			name:     "injects after <body> with attributes",
			html:     `<html><body class="main" id="app">Hello</body></html>`,
			css:      "body { color: red; }",
			expected: `<html><body class="main" id="app"><style>body { color: red; }</style>Hello</body></html>`,
		},
		{
			name:     "injects after <BODY> mixed case",
			html:     "<html><BODY>Hello</BODY></html>",
			css:      "body { color: red; }",
			expected: "<html><BODY><style>body { color: red; }</style>Hello</BODY></html>",
		},
		{
			name:     "prepends to bare fragment",
			html:     "<p>Hello</p>",
			css:      "p { color: blue; }",
			expected: "<style>p { color: blue; }</style><p>Hello</p>",
		},
		{
			name:     "sanitizes CSS with closing tags",
			html:     "<html><head></head><body>Hello</body></html>",
			css:      "</style><script>alert('xss')</script>",
			expected: `<html><head><style><\/style><script>alert('xss')<\/script></style></head><body>Hello</body></html>`,
		},
		{
			name:     "unicode in HTML preserved",
			html:     "<html><head></head><body>Bonjour le monde</body></html>",
			css:      "body { color: red; }",
			expected: "<html><head><style>body { color: red; }</style></head><body>Bonjour le monde</body></html>",
		},
	}

	injector := &cssInjection{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := injector.InjectCSS(ctx, tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	injector := &cssInjection{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	html := "<html><head></head><body>Hello</body></html>"
	css := "body { color: red; }"

	// When context is cancelled, returns HTML unchanged
	got := injector.InjectCSS(ctx, html, css)
	if got != html {
		t.Errorf("InjectCSS() with cancelled context should return HTML unchanged, got %q", got)
	}
}

const testPageTemplate = `<html><head><title>{{.Title}}</title></head>` +
	`<body>{{.Body}}{{if .Date}}<footer>{{.Date}}</footer>{{end}}</body></html>`

func TestWrapPage(t *testing.T) {
	wrapper, err := newPageWrap(testPageTemplate)
	if err != nil {
		t.Fatalf("newPageWrap() unexpected error: %v", err)
	}
	ctx := context.Background()

	t.Run("nil data returns content unchanged", func(t *testing.T) {
		got, err := wrapper.WrapPage(ctx, "<h1>Hi</h1>", nil)
		if err != nil {
			t.Fatalf("WrapPage() unexpected error: %v", err)
		}
		if got != "<h1>Hi</h1>" {
			t.Errorf("WrapPage() = %q, want content unchanged", got)
		}
	})

	t.Run("body passes through unescaped", func(t *testing.T) {
		got, err := wrapper.WrapPage(ctx, "<h1>Hi</h1>", &pageData{Title: "T"})
		if err != nil {
			t.Fatalf("WrapPage() unexpected error: %v", err)
		}
		if !strings.Contains(got, "<h1>Hi</h1>") {
			t.Errorf("WrapPage() should keep the body verbatim, got %q", got)
		}
	})

	t.Run("title is escaped", func(t *testing.T) {
		got, err := wrapper.WrapPage(ctx, "x", &pageData{Title: "<b>T</b>"})
		if err != nil {
			t.Fatalf("WrapPage() unexpected error: %v", err)
		}
		if !strings.Contains(got, "&lt;b&gt;T&lt;/b&gt;") {
			t.Errorf("WrapPage() should escape the title, got %q", got)
		}
		if strings.Contains(got, "<title><b>") {
			t.Errorf("WrapPage() leaked raw title markup: %q", got)
		}
	})

	t.Run("date renders in footer", func(t *testing.T) {
		got, err := wrapper.WrapPage(ctx, "x", &pageData{Title: "T", Date: "2024-03-15"})
		if err != nil {
			t.Fatalf("WrapPage() unexpected error: %v", err)
		}
		if !strings.Contains(got, "<footer>2024-03-15</footer>") {
			t.Errorf("WrapPage() should render the date footer, got %q", got)
		}
	})

	t.Run("empty date omits footer", func(t *testing.T) {
		got, err := wrapper.WrapPage(ctx, "x", &pageData{Title: "T"})
		if err != nil {
			t.Fatalf("WrapPage() unexpected error: %v", err)
		}
		if strings.Contains(got, "<footer>") {
			t.Errorf("WrapPage() should omit the footer without a date, got %q", got)
		}
	})
}

func TestWrapPage_ContextCancellation(t *testing.T) {
	wrapper, err := newPageWrap(testPageTemplate)
	if err != nil {
		t.Fatalf("newPageWrap() unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = wrapper.WrapPage(ctx, "x", &pageData{Title: "T"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WrapPage() with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestWrapPage_TemplateError(t *testing.T) {
	wrapper, err := newPageWrap("{{.Missing}}")
	if err != nil {
		t.Fatalf("newPageWrap() unexpected error: %v", err)
	}

	_, err = wrapper.WrapPage(context.Background(), "x", &pageData{Title: "T"})
	if !errors.Is(err, ErrPageRender) {
		t.Errorf("WrapPage() error = %v, want ErrPageRender", err)
	}
}

func TestNewPageWrap_ParseError(t *testing.T) {
	if _, err := newPageWrap("{{"); err == nil {
		t.Error("newPageWrap() should fail on malformed template syntax")
	}
}

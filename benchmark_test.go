package hurltemplate

import (
	"testing"

	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

var benchmarkTemplates = []struct {
	name     string
	template string
	vars     Variables
}{
	{
		name:     "simple_variable",
		template: "Hello, {{ name }}!",
		vars:     Variables{"name": "World"},
	},
	{
		name:     "multiple_variables",
		template: "{{ greeting }}, {{ name }}! Today is {{ day }}.",
		vars:     Variables{"greeting": "Hello", "name": "World", "day": "Monday"},
	},
	{
		name:     "quoted_with_escapes",
		template: `"user:\t{{ user_name }}\n\"email\": {{ user_email }} \u{2713}"`,
		vars:     Variables{"user_name": "John", "user_email": "john@example.com"},
	},
	{
		name:     "url_with_comment",
		template: "https://{{ host }}:{{ port }}/api/v1/users/{{ id }}?fields={a,b} # fetch user",
		vars:     Variables{"host": "example.org", "port": 8443, "id": 42},
	},
}

func BenchmarkTemplateString(b *testing.B) {
	for _, tt := range benchmarkTemplates {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := TemplateString(tt.template, tt.vars)
				if err != nil {
					b.Fatalf("Error rendering template: %v", err)
				}
			}
		})
	}
}

// Parsing without the cache.
func BenchmarkParseTemplate(b *testing.B) {
	for _, tt := range benchmarkTemplates {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := parser.ParseTemplate(tt.template)
				if err != nil {
					b.Fatalf("Error parsing template: %v", err)
				}
			}
		})
	}
}

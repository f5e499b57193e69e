package template

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name    string
		data    Data
		newline string
		want    string
	}{
		{
			name: "minimal",
			data: Data{
				Address:      "127.0.0.1",
				Domain:       "static.example.com",
				DocumentRoot: "/var/www/static",
			},
			newline: "\n",
			want: "<VirtualHost 127.0.0.1:80>\n" +
				"\tServerName static.example.com\n" +
				"\tDocumentRoot /var/www/static\n" +
				"</VirtualHost>\n",
		},
		{
			name: "all directives",
			data: Data{
				Address:       "10.0.0.5",
				Domain:        "example.com",
				DocumentRoot:  "/var/www/example/public",
				RewriteEngine: true,
				Alias:         "www.example.com",
			},
			newline: "\n",
			want: "<VirtualHost 10.0.0.5:80>\n" +
				"\tServerName example.com\n" +
				"\tDocumentRoot /var/www/example/public\n" +
				"\tRewriteEngine on\n" +
				"\tServerAlias www.example.com\n" +
				"</VirtualHost>\n",
		},
		{
			name: "alias without rewrite",
			data: Data{
				Address:      "127.0.0.1",
				Domain:       "example.com",
				DocumentRoot: "/var/www/example",
				Alias:        "www.example.com",
			},
			newline: "\n",
			want: "<VirtualHost 127.0.0.1:80>\n" +
				"\tServerName example.com\n" +
				"\tDocumentRoot /var/www/example\n" +
				"\tServerAlias www.example.com\n" +
				"</VirtualHost>\n",
		},
		{
			name: "crlf",
			data: Data{
				Address:       "127.0.0.1",
				Domain:        "blog.test",
				DocumentRoot:  `"C:\xampp\htdocs\blog"`,
				RewriteEngine: true,
			},
			newline: "\r\n",
			want: "<VirtualHost 127.0.0.1:80>\r\n" +
				"\tServerName blog.test\r\n" +
				"\tDocumentRoot \"C:\\xampp\\htdocs\\blog\"\r\n" +
				"\tRewriteEngine on\r\n" +
				"</VirtualHost>\r\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Render(tc.data, tc.newline)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if result != tc.want {
				t.Errorf("Render() =\n%q\nwant\n%q", result, tc.want)
			}
		})
	}
}

func TestRenderNoBlankLines(t *testing.T) {
	result, err := Render(Data{Address: "127.0.0.1", Domain: "a.test", DocumentRoot: "/srv/a"}, "\n")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, line := range strings.Split(strings.TrimSuffix(result, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			t.Errorf("line %d is blank", i)
		}
	}
}

func TestRenderMissingDomain(t *testing.T) {
	if _, err := Render(Data{Address: "127.0.0.1"}, "\n"); err == nil {
		t.Error("expected error for missing domain")
	}
}

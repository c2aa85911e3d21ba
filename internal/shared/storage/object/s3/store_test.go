package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "empty prefix", prefix: "", key: "user/resume.pdf", want: "user/resume.pdf"},
		{name: "plain prefix", prefix: "resumes", key: "user/resume.pdf", want: "resumes/user/resume.pdf"},
		{name: "trailing slash trimmed", prefix: "resumes/", key: "user/resume.pdf", want: "resumes/user/resume.pdf"},
		{name: "leading slashes trimmed", prefix: "/resumes/", key: "/user/resume.pdf", want: "resumes/user/resume.pdf"},
		{name: "nested prefix kept", prefix: "env/prod", key: "user/resume.pdf", want: "env/prod/user/resume.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

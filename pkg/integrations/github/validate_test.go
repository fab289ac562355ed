package github

import "testing"

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		in        string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"galaxy-dev/nebula-ui", "galaxy-dev", "nebula-ui", false},
		{"  octocat/Hello-World  ", "octocat", "Hello-World", false},
		{"octocat/hello.git", "octocat", "hello", false},
		{"https://github.com/octocat/hello", "octocat", "hello", false},
		{"https://github.com/octocat/hello.git", "octocat", "hello", false},
		{"http://www.github.com/octocat/hello/", "octocat", "hello", false},
		{"github.com/octocat/my_repo.v2", "octocat", "my_repo.v2", false},

		{"", "", "", true},
		{"octocat", "", "", true},
		{"octocat/hello/extra", "", "", true},
		{"-bad/hello", "", "", true},
		{"octocat/hel lo", "", "", true},
		{"/hello", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			owner, repo, err := ParseRepoRef(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoRef(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoRef(%q) = %q, %q; want %q, %q", tt.in, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

package github

// Repo is an owned repository as shown by the init wizard.
type Repo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	Fork        bool   `json:"fork"`
	URL         string `json:"url"`
}

// apiUser is the subset of GET /users/{user} used for stats.
type apiUser struct {
	Login       string `json:"login"`
	PublicRepos int    `json:"public_repos"`
}

// apiRepo is one entry of GET /users/{user}/repos.
type apiRepo struct {
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Description  string `json:"description"`
	Language     string `json:"language"`
	Stars        int    `json:"stargazers_count"`
	Fork         bool   `json:"fork"`
	HTMLURL      string `json:"html_url"`
	LanguagesURL string `json:"languages_url"`
}

type apiEvent struct {
	Type    string `json:"type"`
	Payload struct {
		Commits []struct {
			SHA string `json:"sha"`
		} `json:"commits"`
	} `json:"payload"`
}

type apiSearch struct {
	TotalCount int `json:"total_count"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		User *struct {
			PullRequests struct {
				TotalCount int `json:"totalCount"`
			} `json:"pullRequests"`
			Issues struct {
				TotalCount int `json:"totalCount"`
			} `json:"issues"`
			Repositories struct {
				TotalCount int `json:"totalCount"`
				Nodes      []struct {
					StargazerCount int `json:"stargazerCount"`
				} `json:"nodes"`
			} `json:"repositories"`
			ContributionsCollection struct {
				TotalCommitContributions     int `json:"totalCommitContributions"`
				RestrictedContributionsCount int `json:"restrictedContributionsCount"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

const statsQuery = `query($username: String!) {
  user(login: $username) {
    pullRequests { totalCount }
    issues { totalCount }
    repositories(ownerAffiliations: OWNER, first: 100) {
      totalCount
      nodes { stargazerCount }
    }
    contributionsCollection {
      totalCommitContributions
      restrictedContributionsCount
    }
  }
}`

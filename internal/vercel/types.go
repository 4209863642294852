package vercel

// Project mirrors the fields of a Vercel project this tool reads.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Framework string `json:"framework,omitempty"`
}

// Domain is a domain bound to a project.
type Domain struct {
	Name      string `json:"name"`
	ProjectID string `json:"projectId,omitempty"`
	Verified  bool   `json:"verified"`
}

// DomainStatus is the team-level view of a domain as returned by /v10/domains/{domain}.
// The endpoint wraps it in a "domain" object on current API versions; decodeStatus
// accepts both shapes.
type DomainStatus struct {
	Name                string   `json:"name"`
	Configured          bool     `json:"configured"`
	Verified            bool     `json:"verified"`
	ServiceType         string   `json:"serviceType,omitempty"`
	Nameservers         []string `json:"nameservers,omitempty"`
	IntendedNameservers []string `json:"intendedNameservers,omitempty"`
}

type projectsResponse struct {
	Projects []Project `json:"projects"`
}

type domainsResponse struct {
	Domains []Domain `json:"domains"`
}

type createProjectRequest struct {
	Name      string `json:"name"`
	Framework string `json:"framework,omitempty"`
}

type addDomainRequest struct {
	Name string `json:"name"`
}

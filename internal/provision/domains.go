package provision

import (
	"context"
	"fmt"
	"strings"

	"vercel-deploy/internal/logger"
	"vercel-deploy/internal/vercel"
)

// Records Vercel asks for when a domain is not configured yet.
const (
	ApexARecord = "76.76.21.21"
	WWWCNAME    = "cname.vercel-dns.com"
)

// DomainAPI is the subset of the Vercel client used for domains.
type DomainAPI interface {
	ListProjectDomains(ctx context.Context, projectID string) ([]vercel.Domain, error)
	AddProjectDomain(ctx context.Context, projectID, name string) (vercel.Domain, error)
	DomainStatus(ctx context.Context, domain string) (vercel.DomainStatus, error)
}

// Domains manages domain bindings and reads their status.
type Domains struct {
	api DomainAPI
	// Apex is the apex domain of the site; it decides which DNS record is suggested.
	Apex string
}

// NewDomains returns a domain manager backed by api.
func NewDomains(api DomainAPI, apex string) *Domains {
	return &Domains{api: api, Apex: apex}
}

// EnsureBound binds domain to the project unless it is already bound.
func (d *Domains) EnsureBound(ctx context.Context, projectID, domain string) error {
	bound, err := d.api.ListProjectDomains(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to list domains of project %s: %w", projectID, err)
	}

	for _, b := range bound {
		if b.Name == domain {
			logger.Info("✅ Domain already bound to project: %s\n", domain)
			return nil
		}
	}

	logger.Info("🌐 Adding domain to project: %s ...\n", domain)
	if _, err := d.api.AddProjectDomain(ctx, projectID, domain); err != nil {
		return fmt.Errorf("failed to add domain %s: %w", domain, err)
	}
	logger.Info("🌍 Domain added: %s\n", domain)
	return nil
}

// CheckStatus reads the configuration status of domain.
// It is diagnostic only: failures are logged and reported as nil.
func (d *Domains) CheckStatus(ctx context.Context, domain string) *vercel.DomainStatus {
	st, err := d.api.DomainStatus(ctx, domain)
	if err != nil {
		logger.Warn("❌ Domain status error for %s: %v\n", domain, err)
		return nil
	}

	if st.ServiceType != "" {
		logger.Info("🔎 %s configured=%t service=%s\n", domain, st.Configured, st.ServiceType)
	} else {
		logger.Info("🔎 %s configured=%t\n", domain, st.Configured)
	}
	if !st.Configured {
		rec := d.Instruction(domain)
		logger.Warn("   Point DNS at Vercel: %s %s %s\n", rec.Name, rec.Type, rec.Value)
		// or hand the whole zone to Vercel
		if ns := PendingNameservers(st); len(ns) > 0 {
			logger.Warn("   Or switch nameservers to: %s\n", strings.Join(ns, ", "))
		}
	}
	return &st
}

// PendingNameservers returns the nameservers Vercel expects for st when the
// domain does not already use all of them, and nil otherwise.
func PendingNameservers(st vercel.DomainStatus) []string {
	if len(st.IntendedNameservers) == 0 {
		return nil
	}

	current := make(map[string]bool, len(st.Nameservers))
	for _, ns := range st.Nameservers {
		current[normalizeHost(ns)] = true
	}
	for _, ns := range st.IntendedNameservers {
		if !current[normalizeHost(ns)] {
			return st.IntendedNameservers
		}
	}
	return nil
}

func normalizeHost(host string) string {
	return strings.ToLower(strings.TrimSuffix(host, "."))
}

// DNSRecord is a record the user has to create at their DNS provider.
type DNSRecord struct {
	Type  string
	Name  string
	Value string
}

// Instruction returns the record that makes domain resolve to Vercel:
// an A record for the apex, a CNAME for anything below it.
func (d *Domains) Instruction(domain string) DNSRecord {
	if d.isApex(domain) {
		return DNSRecord{Type: "A", Name: domain, Value: ApexARecord}
	}
	return DNSRecord{Type: "CNAME", Name: domain, Value: WWWCNAME}
}

func (d *Domains) isApex(domain string) bool {
	if d.Apex != "" {
		return strings.EqualFold(domain, d.Apex)
	}
	return strings.Count(strings.Trim(domain, "."), ".") == 1
}

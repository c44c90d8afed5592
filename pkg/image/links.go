package image

import "strings"

// Link is a parsed link specification
type Link struct {
	// Target is the identifier of the linked container
	Target string

	// Alias is the host name the target is known by inside the container
	Alias string
}

// SplitOnLastColon splits spec at its last colon. A link target may carry
// a registry host and port, as in registry.example.com:5000/app:web, so only
// the final colon separates it from the alias. When there is no colon the
// tail is empty.
func SplitOnLastColon(spec string) (head, tail string) {
	i := strings.LastIndexByte(spec, ':')
	if i < 0 {
		return spec, ""
	}
	return spec[:i], spec[i+1:]
}

// ParseLink reads a target[:alias] link specification. Without an explicit
// alias the target name is used. The last colon always separates the alias,
// so a registry qualified target with a port needs one: registry:5000/app
// reads as target registry.
func ParseLink(spec string) Link {
	spec = strings.TrimSpace(spec)

	target, alias := SplitOnLastColon(spec)
	if len(alias) == 0 {
		alias = target
	}

	return Link{
		Target: target,
		Alias:  alias,
	}
}

// ParseLinks parses every entry of specs, keeping their order
func ParseLinks(specs []string) []Link {
	links := make([]Link, 0, len(specs))
	for _, spec := range specs {
		links = append(links, ParseLink(spec))
	}
	return links
}

package image

// ExtractDependencies returns the identifiers of the images d must wait
// for, in the order they were found. Identifiers are returned as written
// and are not resolved against any set; duplicates may occur.
//
// The rules are applied in order:
//
//  1. every volumes-from entry, always;
//  2. the target of every link, unless d is on a custom network;
//  3. the attached-to container when d shares another container's network.
//
// Links are ignored on a custom network on purpose. Containers on such a
// network find each other by name through the embedded DNS server and need
// no start order, so circular links between them are legal and must not be
// reported as a cycle. Volumes-from is never exempt: a volume cannot be
// mounted before the container holding it exists.
func ExtractDependencies(d *Descriptor) []string {
	deps := []string{}

	deps = append(deps, d.VolumesFrom...)

	if !d.Network.IsCustomNetwork() {
		for _, link := range ParseLinks(d.Links) {
			deps = append(deps, link.Target)
		}
	}

	if alias := d.Network.ContainerAlias(); len(alias) > 0 {
		deps = append(deps, alias)
	}

	return deps
}

package compose

// ServiceDependsOn returns the names of the services the given service depends on, in
// document order. It reports false when the service declares no depends_on.
//
// The short syntax is a list of names. The long syntax maps each name to its options
// (condition, restart, ...), which are ignored here.
func ServiceDependsOn(service *Mapping) ([]string, bool) {
	if service == nil {
		return nil, false
	}

	node, ok := service.Get(dependsOnKey)
	if !ok {
		return nil, false
	}

	names := []string{}

	switch depends := node.(type) {
	case *Sequence:
		for _, item := range depends.Items {
			if name, isText := ScalarText(item); isText && name != "" {
				names = append(names, name)
			}
		}
	case *Mapping:
		for name := range depends.All() {
			if name != "" {
				names = append(names, name)
			}
		}
	}

	return names, true
}

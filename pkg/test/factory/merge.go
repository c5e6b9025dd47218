package factory

// merge folds overrides onto defaults, later maps winning.
func merge(defaults map[string]any, overrides []map[string]any) map[string]any {
	for _, data := range overrides {
		for key, value := range data {
			defaults[key] = value
		}
	}

	return defaults
}

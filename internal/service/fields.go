package service

import "gorm.io/datatypes"

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func images(urls []string) datatypes.JSONSlice[string] {
	if urls == nil {
		urls = []string{}
	}
	return datatypes.JSONSlice[string](urls)
}

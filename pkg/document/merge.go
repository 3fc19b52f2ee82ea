package document

import "k8s.io/apimachinery/pkg/util/sets"

// Options controls how Merge treats lists.
type Options struct {
	// AppendFields names object fields whose list values are unioned by
	// appending every source element instead of merging by position.
	AppendFields sets.Set[string]
}

// DefaultOptions returns the options used for pod templates: volumes and
// volume mounts are appended, every other list merges by position.
func DefaultOptions() Options {
	return Options{AppendFields: sets.New("volumes", "volumeMounts")}
}

// Merge merges src into dst and returns the result. When both values are
// objects or both are arrays, dst is updated in place and returned; in every
// other case a copy of src replaces dst. src is never modified.
func Merge(dst, src Value, opts Options) Value {
	if src == nil {
		return dst
	}

	switch d := dst.(type) {
	case *Object:
		if s, ok := src.(*Object); ok {
			mergeObjects(d, s, opts)
			return d
		}
	case *Array:
		if s, ok := src.(*Array); ok {
			mergeArrays(d, s, opts)
			return d
		}
	}
	return src.DeepCopy()
}

func mergeObjects(dst, src *Object, opts Options) {
	for _, key := range src.keys {
		sv := src.fields[key]
		dv, ok := dst.fields[key]
		if !ok {
			dst.Set(key, sv.DeepCopy())
			continue
		}
		if opts.AppendFields.Has(key) {
			da, dok := dv.(*Array)
			sa, sok := sv.(*Array)
			if dok && sok {
				appendArrays(da, sa)
				continue
			}
		}
		dst.fields[key] = Merge(dv, sv, opts)
	}
}

func mergeArrays(dst, src *Array, opts Options) {
	common := min(len(dst.items), len(src.items))
	for i := range common {
		dst.items[i] = Merge(dst.items[i], src.items[i], opts)
	}
	appendArrays(dst, &Array{items: src.items[common:]})
}

func appendArrays(dst, src *Array) {
	for _, v := range src.items {
		dst.items = append(dst.items, v.DeepCopy())
	}
}

package symbols

// AssignableTo reports whether a value of type src may be assigned to a
// location of type dst, covering spec.md §4.5's rules: identity, array
// covariance (an array of a derived element type is assignable to an array
// of the base element type), walking the base-class chain, and a recursive
// interface-implementation check.
func AssignableTo(src, dst *Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if src == dst {
		return true
	}
	if dst.Kind == KindArray && src.Kind == KindArray {
		return src.Rank == dst.Rank && AssignableTo(src.Elem, dst.Elem)
	}
	if dst.Kind == KindInterface {
		return implementsInterface(src, dst)
	}
	if dst.IsClassLike() {
		for b := src.Base; b != nil; b = b.Base {
			if b == dst {
				return true
			}
		}
	}
	return false
}

// IsDerivedFrom reports whether src is a strict descendant of dst — the
// same walk AssignableTo performs for class targets, but excluding the
// identity case, for call sites that need to distinguish "is the same
// type" from "is a subtype of".
func IsDerivedFrom(src, dst *Type) bool {
	if src == nil || dst == nil || src == dst {
		return false
	}
	for b := src.Base; b != nil; b = b.Base {
		if b == dst {
			return true
		}
	}
	return false
}

func implementsInterface(src, iface *Type) bool {
	if src == nil {
		return false
	}
	for _, i := range src.Interfaces {
		if i == iface || implementsInterface(i, iface) {
			return true
		}
	}
	if src.Base != nil {
		return implementsInterface(src.Base, iface)
	}
	return false
}

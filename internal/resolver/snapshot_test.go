package resolver

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/asterlang/aster/internal/ast"
	"github.com/asterlang/aster/internal/parser"
	"github.com/asterlang/aster/internal/symbols"
	"github.com/gkampitakis/go-snaps/snaps"
)

// dumpScope renders a scope's member names, sorted, one per line, indented
// by depth. It exists purely for these snapshots: a textual view of what
// pass 3 put in a type's scope is easier to eyeball for an unwanted change
// than asserting on individual entries one by one.
func dumpScope(scope *symbols.Scope, depth int) string {
	if scope == nil {
		return ""
	}
	var sb strings.Builder
	names := scope.Names()
	sort.Strings(names)
	prefix := strings.Repeat("  ", depth)
	for _, name := range names {
		entry, _ := scope.LookupLocal(name)
		sb.WriteString(fmt.Sprintf("%s%s: %T\n", prefix, name, entry))
	}
	return sb.String()
}

// dumpTypes renders every type pass 1 registered, sorted by qualified name,
// together with its member scope.
func dumpTypes(ctx *PassContext) string {
	var names []string
	for name := range ctx.qualified {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		t := ctx.qualified[name]
		sb.WriteString(fmt.Sprintf("type %s (kind=%v sealed=%v)\n", name, t.Kind, t.Sealed))
		sb.WriteString(dumpScope(t.Scope, 1))
	}
	return sb.String()
}

func TestSnapshotResolvedClassHierarchy(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		namespace Shapes {
			public abstract class Shape {
				public abstract double Area();
				public override string ToString() { return "Shape"; }
			}
			public class Circle : Shape {
				public double Radius;
				public Circle(double radius) { Radius = radius; }
				public override double Area() { return Radius * Radius; }
			}
		}
	`})
	requireNoErrors(t, ctx)
	snaps.MatchSnapshot(t, "class_hierarchy", dumpTypes(ctx))
}

func TestSnapshotResolvedPropertyAndEvent(t *testing.T) {
	ctx, _ := resolveSrc(t, testFile{"a.as", `
		public delegate void Handler();
		public class Widget {
			private int size;
			public int Size {
				get { return size; }
				set { size = value; }
			}
			public event Handler Clicked;
		}
	`})
	requireNoErrors(t, ctx)
	snaps.MatchSnapshot(t, "property_and_event", dumpTypes(ctx))
}

func TestSnapshotParsedEnumAndDelegateAST(t *testing.T) {
	ns, failure := parser.Parse("a.as", `
		public enum Color { Red, Green, Blue }
		public delegate int Comparer(int a, int b);
	`)
	if failure != nil {
		t.Fatalf("parse: %s", failure.Format())
	}
	var sb strings.Builder
	for _, td := range ns.Types {
		switch d := td.(type) {
		case *ast.EnumDecl:
			var members []string
			for _, m := range d.Members {
				members = append(members, m.Name)
			}
			sb.WriteString(fmt.Sprintf("enum %s { %s }\n", d.Name, strings.Join(members, ", ")))
		case *ast.DelegateDecl:
			var params []string
			for _, p := range d.Params {
				params = append(params, p.Name)
			}
			sb.WriteString(fmt.Sprintf("delegate %s(%s)\n", d.Name, strings.Join(params, ", ")))
		}
	}
	snaps.MatchSnapshot(t, "enum_and_delegate_ast", sb.String())
}

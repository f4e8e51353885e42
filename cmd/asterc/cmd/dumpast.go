package cmd

import (
	"fmt"
	"strings"

	"github.com/asterlang/aster/internal/ast"
	"github.com/spf13/cobra"
)

var dumpASTCmd = &cobra.Command{
	Use:   "dump-ast [path...]",
	Short: "Parse and resolve a program, then print its namespace/type tree",
	Long: `dump-ast runs the same pipeline as check and, if resolution produced no
error, prints the merged Program's namespace/type declaration tree —
useful for confirming how files merged and which types a namespace ended
up declaring, without inspecting resolved symbol details (see
dump-symbols for that).`,
	RunE: runDumpAST,
}

func init() {
	rootCmd.AddCommand(dumpASTCmd)
}

func runDumpAST(_ *cobra.Command, args []string) error {
	result, opts, err := compileArgs(args)
	if err != nil {
		return err
	}
	if err := printDiagnostics(result); err != nil {
		return err
	}
	if result.HasErrors(opts) {
		return fail("dump-ast: %s", result.Bag.Summary())
	}
	for _, ns := range result.Program.Namespaces {
		dumpNamespace(ns, 0)
	}
	return nil
}

func dumpNamespace(ns *ast.Namespace, depth int) {
	name := ns.Name
	if name == "" {
		name = "<global>"
	}
	fmt.Printf("%snamespace %s\n", indent(depth), name)
	for _, u := range ns.Usings {
		if u.Alias != "" {
			fmt.Printf("%susing %s = %s;\n", indent(depth+1), u.Alias, u.Target)
		} else {
			fmt.Printf("%susing %s;\n", indent(depth+1), u.Target)
		}
	}
	for _, td := range ns.Types {
		dumpTypeDecl(td, depth+1)
	}
	for _, nested := range ns.Namespaces {
		dumpNamespace(nested, depth+1)
	}
}

func dumpTypeDecl(td ast.TypeDecl, depth int) {
	switch t := td.(type) {
	case *ast.ClassDecl:
		fmt.Printf("%s%s %s\n", indent(depth), genreKeyword(t.Genre), t.Name)
		for _, f := range t.Fields {
			fmt.Printf("%sfield %s\n", indent(depth+1), f.Name)
		}
		for _, m := range t.Methods {
			fmt.Printf("%smethod %s\n", indent(depth+1), m.Name)
		}
		for _, p := range t.Properties {
			fmt.Printf("%sproperty %s\n", indent(depth+1), p.Name)
		}
		for _, e := range t.Events {
			fmt.Printf("%sevent %s\n", indent(depth+1), e.Name)
		}
		for _, nested := range t.NestedTypes {
			dumpTypeDecl(nested, depth+1)
		}
	case *ast.EnumDecl:
		fmt.Printf("%senum %s\n", indent(depth), t.Name)
		for _, m := range t.Members {
			fmt.Printf("%s%s\n", indent(depth+1), m.Name)
		}
	case *ast.DelegateDecl:
		fmt.Printf("%sdelegate %s\n", indent(depth), t.Name)
	default:
		fmt.Printf("%s%s\n", indent(depth), td.TypeName())
	}
}

func genreKeyword(g ast.ClassGenre) string {
	switch g {
	case ast.GenreStruct:
		return "struct"
	case ast.GenreInterface:
		return "interface"
	default:
		return "class"
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/storage"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core or storage subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") || strings.HasSuffix(cwd, "storage") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}

	generateCore()
	generateStorage()
}

// Collection lengths are checked by core.ValidateLength before allocation.
var lenOpts = typeops.WithLenValidator("ValidateLength")

func generateCore() {
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/tagraph/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())
	g.AddDefinedType(reflect.TypeFor[core.ItemID]())
	g.AddDefinedType(reflect.TypeFor[core.Category]())
	g.AddDefinedType(reflect.TypeFor[core.LemmaKey]())

	err = g.AddStruct(reflect.TypeFor[core.CanonicalTag](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(lenOpts))
	if err != nil {
		panic(err)
	}

	write(g, "./core/records_mus.gen.go")
}

func generateStorage() {
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/tagraph/storage"),
		genops.WithImport("github.com/poiesic/tagraph/core"),
	)
	if err != nil {
		panic(err)
	}

	// Unix micro timestamps
	opts := typeops.WithTimeUnit(typeops.Micro)
	err = g.AddStruct(reflect.TypeFor[storage.Meta](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(opts),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[storage.ItemRecord](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(typeops.WithLenValidator("core.ValidateLength")))
	if err != nil {
		panic(err)
	}

	write(g, "./storage/records_mus.gen.go")
}

func write(g *musgen.CodeGenerator, path string) {
	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, bs, 0644); err != nil {
		panic(err)
	}
}

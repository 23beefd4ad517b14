package pyscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, module string, isPackage bool, source string) *fileInfo {
	t.Helper()
	info, err := parseFile("/src/"+module+".py", module, isPackage, []byte(source))
	require.NoError(t, err)
	return info
}

func TestParseFile_PlainImport(t *testing.T) {
	info := parseSource(t, "pkg.mod", false, "import os.path\n")

	assert.Equal(t, []string{"os.path"}, info.Imports)
	assert.Equal(t, "os", info.bindings["os"])
}

func TestParseFile_AliasedImport(t *testing.T) {
	info := parseSource(t, "pkg.mod", false, "import pkg.util as util\n")

	assert.Equal(t, []string{"pkg.util"}, info.Imports)
	assert.Equal(t, "pkg.util", info.bindings["util"])
}

func TestParseFile_FromImport(t *testing.T) {
	info := parseSource(t, "pkg.mod", false, "from pkg.util import helper, Thing as T\n")

	assert.Equal(t, []string{"pkg.util"}, info.Imports)
	assert.Equal(t, "pkg.util.helper", info.bindings["helper"])
	assert.Equal(t, "pkg.util.Thing", info.bindings["T"])
}

func TestParseFile_RelativeImport(t *testing.T) {
	info := parseSource(t, "pkg.sub.mod", false, "from .util import helper\nfrom ..top import other\n")

	assert.Equal(t, []string{"pkg.sub.util", "pkg.top"}, info.Imports)
	assert.Equal(t, "pkg.sub.util.helper", info.bindings["helper"])
	assert.Equal(t, "pkg.top.other", info.bindings["other"])
}

func TestParseFile_RelativeImportInPackageInit(t *testing.T) {
	info := parseSource(t, "pkg.sub", true, "from .util import helper\n")

	assert.Equal(t, []string{"pkg.sub.util"}, info.Imports)
}

func TestParseFile_RelativeImportPastRootIsDropped(t *testing.T) {
	info := parseSource(t, "mod", false, "from ...nowhere import thing\n")

	assert.Empty(t, info.Imports)
}

func TestParseFile_NestedDefinitions(t *testing.T) {
	source := `class Outer:
    class Inner:
        pass

    def method(self):
        def local():
            pass
        local()
`
	info := parseSource(t, "pkg.mod", false, source)

	var classes []string
	for _, class := range info.Classes {
		classes = append(classes, class.FQN)
	}
	assert.Equal(t, []string{"pkg.mod.Outer", "pkg.mod.Outer.Inner"}, classes)
	assert.Equal(t, []string{"pkg.mod.Outer.method", "pkg.mod.Outer.method.local"}, info.Functions)

	require.Len(t, info.Calls, 1)
	assert.Equal(t, "pkg.mod.Outer.method", info.Calls[0].Caller)
	assert.Equal(t, "local", info.Calls[0].Target)
}

func TestParseFile_Superclasses(t *testing.T) {
	source := `import base


class A(base.Thing, LocalBase, metaclass=Meta):
    pass
`
	info := parseSource(t, "pkg.mod", false, source)

	require.Len(t, info.Classes, 1)
	assert.Equal(t, []string{"base.Thing", "LocalBase"}, info.Classes[0].Supers)
}

func TestParseFile_ModuleLevelCall(t *testing.T) {
	info := parseSource(t, "pkg.mod", false, "setup()\n")

	require.Len(t, info.Calls, 1)
	assert.Equal(t, "pkg.mod", info.Calls[0].Caller)
	assert.Equal(t, "setup", info.Calls[0].Target)
}

func TestParseFile_SubscriptCallTargetIsSkipped(t *testing.T) {
	info := parseSource(t, "pkg.mod", false, "handlers[0]()\n")

	assert.Empty(t, info.Calls)
}

func TestParseFile_TopLevelDefsShadowImports(t *testing.T) {
	source := `from pkg.util import helper


def helper():
    pass
`
	info := parseSource(t, "pkg.mod", false, source)

	assert.Equal(t, "pkg.mod.helper", info.bindings["helper"])
}

func TestResolveName(t *testing.T) {
	info := &fileInfo{
		Module: "pkg.mod",
		bindings: map[string]string{
			"util": "pkg.util",
			"f":    "pkg.util.f",
		},
	}

	assert.Equal(t, "pkg.util.f", resolveName(info, "f"))
	assert.Equal(t, "pkg.util.helper", resolveName(info, "util.helper"))
	assert.Equal(t, "pkg.mod.local", resolveName(info, "local"))
	assert.Equal(t, "pkg.mod.self.attr", resolveName(info, "self.attr"))
}

func TestModuleName(t *testing.T) {
	name, isPackage := moduleName("/proj", "/proj/app/models.py")
	assert.Equal(t, "app.models", name)
	assert.False(t, isPackage)

	name, isPackage = moduleName("/proj", "/proj/app/__init__.py")
	assert.Equal(t, "app", name)
	assert.True(t, isPackage)

	name, _ = moduleName("/proj", "/proj/__init__.py")
	assert.Equal(t, "", name)

	name, _ = moduleName("/proj", "/elsewhere/x.py")
	assert.Equal(t, "", name)
}

package depgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords_DecodesEachType(t *testing.T) {
	stream := strings.Join([]string{
		`{"type":"module","module":"proj.a","file":"/proj/a.py"}`,
		`{"type":"import","importer":"proj.a","importee":"proj.b","file":"/proj/a.py"}`,
		`{"type":"invalidate","module":"proj.a","file":"/proj/a.py"}`,
		`{"type":"class_def","fullname":"proj.a.C","file":"/proj/a.py"}`,
		`{"type":"class_ref","src":"proj.a.C","dst":"proj.b.D","kind":"INHERITANCE","file":"/proj/a.py"}`,
		`{"type":"function_def","fullname":"proj.a.f","file":"/proj/a.py"}`,
		`{"type":"call","caller":"proj.a.f","callee":"proj.b.g","file":"/proj/a.py"}`,
	}, "\n")

	records, err := ReadRecords(strings.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, records, 7)

	assert.Equal(t, Record{Type: "module", Module: "proj.a", File: "/proj/a.py"}, records[0])
	assert.Equal(t, Record{Type: "import", Importer: "proj.a", Importee: "proj.b", File: "/proj/a.py"}, records[1])
	assert.Equal(t, Record{Type: "invalidate", Module: "proj.a", File: "/proj/a.py"}, records[2])
	assert.Equal(t, Record{Type: "class_def", Fullname: "proj.a.C", File: "/proj/a.py"}, records[3])
	assert.Equal(t, Record{Type: "class_ref", Src: "proj.a.C", Dst: "proj.b.D", Kind: "INHERITANCE", File: "/proj/a.py"}, records[4])
	assert.Equal(t, Record{Type: "function_def", Fullname: "proj.a.f", File: "/proj/a.py"}, records[5])
	assert.Equal(t, Record{Type: "call", Caller: "proj.a.f", Callee: "proj.b.g", File: "/proj/a.py"}, records[6])
}

func TestReadRecords_SkipsBlankLinesAndKeepsUnknownTypes(t *testing.T) {
	stream := "{\"type\":\"module\",\"module\":\"a\"}\n\n{\"type\":\"metrics\",\"count\":3}\n"

	records, err := ReadRecords(strings.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "metrics", records[1].Type)
}

func TestReadRecords_ToleratesAdditiveFields(t *testing.T) {
	stream := `{"type":"module","module":"a","file":"/a.py","generation":7}`

	records, err := ReadRecords(strings.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Module)
}

func TestReadRecords_MalformedLineIsAnError(t *testing.T) {
	stream := "{\"type\":\"module\",\"module\":\"a\"}\nnot json\n"

	_, err := ReadRecords(strings.NewReader(stream))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

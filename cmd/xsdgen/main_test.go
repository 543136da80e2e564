package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/untillpro/goutils/logger"
	"gopkg.in/yaml.v3"

	"github.com/CognitoIQ/go-xsdbind/internal/testutil"
	"github.com/CognitoIQ/go-xsdbind/xsdgen"
)

const orderSchema = `
<xs:complexType name="orderType">
  <xs:sequence>
    <xs:element name="item" type="tns:itemType" maxOccurs="unbounded"/>
    <xs:element name="next" type="tns:orderType" minOccurs="0"/>
  </xs:sequence>
  <xs:attribute name="lang" type="xs:language"/>
</xs:complexType>
<xs:complexType name="itemType">
  <xs:sequence>
    <xs:element name="sku" type="xs:string"/>
  </xs:sequence>
</xs:complexType>
<xs:complexType name="unused"/>`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGen(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "order.xsd", testutil.Schema(orderSchema))
	out := filepath.Join(dir, "order.go")

	err := execRootCmd([]string{"xsdgen", "gen", "-o", out, "--pkg", "po", "-r", "Type$ -> ", schema}, "test")
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(src), "package po")
	require.Contains(t, string(src), "type Order struct")
	require.Contains(t, string(src), "type Item struct")
	require.Contains(t, string(src), "func (x *Order) Clone() *Order")
}

func TestGenConfigFile(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "order.xsd", testutil.Schema(orderSchema))
	out := filepath.Join(dir, "po.go")
	config := writeFile(t, dir, "xsdgen.yaml", []byte(`
package: purchase
output: `+out+`
rename:
  orderType: PurchaseOrder
  itemType: LineItem
ignoreAttributes: [lang]
only: ["^orderType$"]
methods: false
`))

	err := execRootCmd([]string{"xsdgen", "gen", "-c", config, schema}, "test")
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(src), "package purchase")
	require.Contains(t, string(src), "type PurchaseOrder struct")
	require.Contains(t, string(src), "type LineItem struct")
	require.NotContains(t, string(src), "Unused")
	require.NotContains(t, string(src), "Lang")
	require.NotContains(t, string(src), "func NewPurchaseOrder")
}

func TestGenErrors(t *testing.T) {
	dir := t.TempDir()
	err := execRootCmd([]string{"xsdgen", "gen", filepath.Join(dir, "missing.xsd")}, "test")
	require.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", []byte("replace: [\"no arrow\"]\n"))
	schema := writeFile(t, dir, "order.xsd", testutil.Schema(orderSchema))
	err = execRootCmd([]string{"xsdgen", "gen", "-c", bad, schema}, "test")
	require.Error(t, err)

	err = execRootCmd([]string{"xsdgen", "gen"}, "test")
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "order.xsd", testutil.Schema(orderSchema+`
<xs:complexType name="broken">
  <xs:sequence><xs:element name="x" type="tns:missing"/></xs:sequence>
</xs:complexType>`))

	var f genFlags
	var buf bytes.Buffer
	require.NoError(t, f.describe(&buf, []string{schema}))

	var docs []docSummary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 1)
	doc := docs[0]
	require.Equal(t, testutil.TargetNS, doc.TargetNamespace)
	require.Len(t, doc.Errors, 1)
	require.Contains(t, doc.Errors[0], `"broken"`)

	var names []string
	for _, typ := range doc.Types {
		names = append(names, typ.Name)
	}
	require.Equal(t, []string{"OrderType", "ItemType", "Unused"}, names)
	require.Equal(t, "struct", doc.Types[0].Kind)
	require.Contains(t, doc.Types[0].Fields, `Next *OrderType xml:"`+testutil.TargetNS+` next,omitempty"`)
}

func TestLoadConfig(t *testing.T) {
	fc, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, &fileConfig{}, fc)

	dir := t.TempDir()
	name := writeFile(t, dir, "bad.yaml", []byte("package: [unterminated"))
	_, err = loadConfig(name)
	require.Error(t, err)
}

func TestCLILoggerLevels(t *testing.T) {
	var levels []logger.TLogLevel
	prev := logger.PrintLine
	logger.PrintLine = func(level logger.TLogLevel, line string) {
		levels = append(levels, level)
	}
	defer func() { logger.PrintLine = prev }()
	logger.SetLogLevel(logger.LogLevelInfo)

	var l cliLogger
	l.Diagnostic(xsdgen.Diagnostic{Level: xsdgen.Warning, Type: "order", Message: "<any> particle is not supported"})
	l.Diagnostic(xsdgen.Diagnostic{Level: xsdgen.Info, Type: "order", Message: "cycle broken"})
	l.Diagnostic(xsdgen.Diagnostic{Level: xsdgen.Debug, Message: "hidden"})
	l.Printf("generated %s", "Order")
	require.Equal(t, []logger.TLogLevel{logger.LogLevelWarning, logger.LogLevelInfo, logger.LogLevelInfo}, levels)

	var _ xsdgen.DiagnosticLogger = l
}

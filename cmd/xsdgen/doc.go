/*
xsdgen generates Go type declarations and associated methods from one
or more XML schema documents.

Usage:

	xsdgen gen [-o file] [--pkg name] [--ns prefix] [-r rule] [-c config.yaml] file ...
	xsdgen parse [flags] file ...

Given a set of files containing <xs:schema> documents, the gen command
writes a single Go source file with a type for every complex type,
simple type and anonymously typed global element of the schema. The
generated file only depends on the Go standard library. Types that
cannot be generated are reported and left out; the rest are still
written.

The default package name and output file are "bindings" and
"xsdgen_output.go", and can be overridden by the --pkg and -o flags.

The --ns flag qualifies the element fields of every type with the
namespace bound to the given prefix in the schema. By default element
fields are qualified with the target namespace when the schema sets
elementFormDefault="qualified".

The -r flag can be used to specify a series of replacement rules. A
replacement rule is a string of the form

	regex -> replacement

For example, the rule

	Array_Of_soapenc_(.*) -> ${1}Array

will transform the identifier Array_Of_soapenc_boolean to booleanArray.
All identifiers are passed through the defined substitution rules.

Settings may also be read from a YAML file given with -c:

	package: po
	output: po.go
	rename:
	  purchaseOrderType: PurchaseOrder
	replace:
	  - "Type$ -> "
	ignoreAttributes: [lang]
	only: ["^purchaseOrderType$"]
	methods: false

Flags given on the command line take precedence over the file.

The parse command prints the declarations that gen would write, with
any diagnostics, as YAML.

The -v and --trace flags make both commands report on the generation
of every type. The xsdgen command may be used with go generate:

	//go:generate xsdgen gen -o po.go --pkg po po.xsd
*/
package main

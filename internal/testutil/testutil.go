// Package testutil contains common utility functions for unit tests.
package testutil

import "fmt"

// TargetNS is the target namespace of documents built with Schema.
const TargetNS = "http://example.org/test"

// Schema wraps body in a <xs:schema> element that binds the "xs"
// prefix to the XML Schema namespace and the "tns" prefix to TargetNS.
func Schema(body string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
	xmlns:tns=%q
	targetNamespace=%q
	elementFormDefault="qualified">
%s
</xs:schema>`, TargetNS, TargetNS, body))
}

package script

import "strings"

// systemModules are the script-callable system.* namespaces shipped with
// the platform. Calls outside this set are worth a second look but are not
// necessarily wrong, so the finding stays a warning.
var systemModules = map[string]bool{
	"system.alarm":       true,
	"system.bacnet":      true,
	"system.database":    true,
	"system.dataset":     true,
	"system.date":        true,
	"system.db":          true,
	"system.device":      true,
	"system.file":        true,
	"system.gui":         true,
	"system.iec61850":    true,
	"system.math":        true,
	"system.mongodb":     true,
	"system.net":         true,
	"system.opcua":       true,
	"system.opc":         true,
	"system.perspective": true,
	"system.print":       true,
	"system.project":     true,
	"system.report":      true,
	"system.security":    true,
	"system.tag":         true,
	"system.util":        true,
	"system.vision":      true,
	"system.webdev":      true,
}

// knownJavaPackages is a lightweight subset of the packages visible to the
// embedded Jython runtime. Enough to tell real packages from typos.
var knownJavaPackages = map[string]bool{
	"java.lang":                  true,
	"java.lang.management":       true,
	"java.util":                  true,
	"java.util.concurrent":       true,
	"java.util.concurrent.atomic": true,
	"java.util.concurrent.locks": true,
	"java.util.function":         true,
	"java.util.regex":            true,
	"java.util.stream":           true,
	"java.util.zip":              true,
	"java.io":                    true,
	"java.net":                   true,
	"java.math":                  true,
	"java.time":                  true,
	"java.time.format":           true,
	"java.time.temporal":         true,
	"java.sql":                   true,
	"java.text":                  true,
	"java.nio":                   true,
	"java.nio.charset":           true,
	"java.nio.channels":          true,
	"java.nio.file":              true,
	"java.security":              true,
	"java.security.cert":         true,
	"java.security.interfaces":   true,
	"java.awt":                   true,
	"java.awt.datatransfer":      true,
	"java.awt.event":             true,
	"java.awt.geom":              true,
	"javax.swing":                true,
	"javax.swing.border":         true,
	"javax.swing.table":          true,
	"javax.crypto":               true,
	"javax.imageio":              true,
	"javax.naming.ldap":          true,
	"javax.net.ssl":              true,
	"javax.security.auth.x500":   true,
	"javax.servlet":              true,
	"javax.servlet.http":         true,
	"javax.xml.parsers":          true,

	"com.inductiveautomation.ignition.common":                  true,
	"com.inductiveautomation.ignition.common.document":         true,
	"com.inductiveautomation.ignition.common.execution":        true,
	"com.inductiveautomation.ignition.common.execution.impl":   true,
	"com.inductiveautomation.ignition.common.logging":          true,
	"com.inductiveautomation.ignition.common.model":            true,
	"com.inductiveautomation.ignition.common.model.values":     true,
	"com.inductiveautomation.ignition.common.script":           true,
	"com.inductiveautomation.ignition.common.script.builtin":   true,
	"com.inductiveautomation.ignition.common.tags.browsing":    true,
	"com.inductiveautomation.ignition.common.user":             true,
	"com.inductiveautomation.ignition.common.util":             true,
	"com.inductiveautomation.ignition.common.util.logutil":     true,
	"com.inductiveautomation.ignition.gateway":                 true,
	"com.inductiveautomation.ignition.gateway.datasource":      true,
	"com.inductiveautomation.ignition.designer":                true,
	"com.inductiveautomation.ignition.client.images":           true,
	"com.inductiveautomation.perspective.common":               true,
	"com.inductiveautomation.perspective.gateway":              true,
	"com.inductiveautomation.factorypmi.application":           true,
	"com.inductiveautomation.factorypmi.application.components.template": true,
}

func isKnownJavaPackage(pkg string) bool {
	return knownJavaPackages[pkg]
}

func looksLikeJavaPackage(pkg string) bool {
	return strings.HasPrefix(pkg, "java.") ||
		strings.HasPrefix(pkg, "javax.") ||
		strings.HasPrefix(pkg, "com.inductiveautomation.")
}

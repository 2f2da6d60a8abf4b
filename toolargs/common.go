// common.go: Options shared by the compilers
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package toolargs

import (
	"sync"

	"github.com/agilira/janus"
)

// commonCompilerOptions are understood by every compiler of the family.
var commonCompilerOptions = []janus.OptionSpec{
	{Name: "-nowarn", Kind: janus.KindFlag, Help: "Generate no warnings"},
	{Name: "-Werror", Kind: janus.KindFlag, Help: "Report an error if there are any warnings"},
	{Name: "-verbose", Kind: janus.KindFlag, Help: "Enable verbose logging output"},
	{Name: "-version", Kind: janus.KindFlag, Help: "Display compiler version"},
	{Name: "-language-version", Kind: janus.KindScalar, ValueDescription: "<version>",
		Help: "Provide source compatibility with specified language version"},
	{Name: "-api-version", Kind: janus.KindScalar, ValueDescription: "<version>",
		Help: "Allow to use declarations only from the specified version of bundled libraries"},
	{Name: "-progressive", Kind: janus.KindFlag,
		Help: "Enable progressive compiler mode"},
	{Name: "-Xplugin", Kind: janus.KindList, Delimiter: ',', Visibility: janus.Internal,
		ValueDescription: "<path>", Help: "Load plugins from the given classpath"},
	{Name: "-P", Kind: janus.KindList, Visibility: janus.Internal,
		ValueDescription: "plugin:<pluginId>:<optionName>=<value>", Help: "Pass an option to a plugin"},
	{Name: "-Xno-inline", Kind: janus.KindFlag, Visibility: janus.Internal,
		Help: "Disable method inlining"},
	{Name: "-Xmulti-platform", Kind: janus.KindFlag, Visibility: janus.Internal,
		Help: "Enable experimental language support for multi-platform projects"},
}

var commonCompilerSchema = sync.OnceValues(func() (*janus.Schema, error) {
	return janus.Build(nil, commonCompilerOptions,
		janus.WithName("kotlinc"),
		janus.WithDescription("Options shared by every compiler of the family."))
})

// CommonCompilerSchema returns the base schema shared by the compilers.
func CommonCompilerSchema() (*janus.Schema, error) {
	return commonCompilerSchema()
}

// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package util holds small helpers used by the syscall dispatcher.
package util

import (
	"bytes"
	"os"
)

var secureOutput bytes.Buffer
var nonSecureOutput bytes.Buffer

const outputLimit = 1024
const flushChr = 0x0a // \n

func BufferedStdoutLog(c byte, secure bool) {
	var buf *bytes.Buffer

	if secure {
		buf = &secureOutput
	} else {
		buf = &nonSecureOutput
	}

	buf.WriteByte(c)

	if c == flushChr || buf.Len() > outputLimit {
		os.Stdout.Write(buf.Bytes())
		buf.Reset()
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfds

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the cache line size of the target architecture in bytes.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// CacheLinePad occupies one full cache line.
//
// Place a CacheLinePad between two independently written fields to keep
// them on separate lines:
//
//	type counters struct {
//	    _     lfds.CacheLinePad
//	    reads atomix.Uint64
//	    _     lfds.CacheLinePad
//	    writes atomix.Uint64
//	    _     lfds.CacheLinePad
//	}
type CacheLinePad [CacheLineSize]byte

// pad is the package-internal spelling of CacheLinePad.
type pad = CacheLinePad

// padShort fills the rest of a cache line after an 8-byte field.
type padShort [CacheLineSize - 8]byte

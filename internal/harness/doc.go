// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package harness drives producer/consumer workloads against the lfds
// structures and a mutex-guarded reference queue.
//
// Every run pushes a fixed set of unique tokens and checks that each token
// comes out exactly once, so a run doubles as a loss/duplication check.
package harness

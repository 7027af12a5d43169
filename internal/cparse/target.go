package cparse

// The core only ever targets x86-64 Linux — no 32-bit/non-x86 targets,
// no Windows/macOS — so cc/v4's config is pinned rather than read from
// the host running the compiler.
func hostOS() string   { return "linux" }
func hostArch() string { return "amd64" }

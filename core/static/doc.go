// Package static provides the serving chains of the development server:
// directory serving with index-file resolution and generated listings,
// bundled-resource serving with the same index conventions, and the
// plain-text not-found terminal.
//
// # Directory serving
//
// DirChain serves an on-disk directory. A request for a directory path is
// answered with its index.html/index.htm (matched case-insensitively) when
// one exists, and with a generated HTML listing otherwise. Regular files
// are streamed as-is. If the directory is missing at startup it is created
// recursively with a logged warning.
//
//	h, err := static.DirChain("./public")
//
// # Bundled resources
//
// ResourceChain serves a read-only fs.FS, typically an embed.FS compiled
// into the binary. Only the conventional index filename is probed for
// directory-style URLs; bundled filesystems are not enumerated and no
// listing is rendered.
//
//	//go:embed resources
//	var resources embed.FS
//
//	h := static.ResourceChain(resources)
//
// Both chains terminate in NotFound, so every request receives a response.
package static

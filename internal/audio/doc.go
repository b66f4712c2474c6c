// Package audio assembles spoken word lists: it decodes synthesized clips,
// concatenates them with silence into a PCM buffer and exports the result as MP3.
package audio

// File doc.go documents the wire package's role within the codec.
//
// wire has no dependencies on the rest of the module: it is pure constants
// and pure functions over those constants, a stable byte-level vocabulary
// shared by the encoder and decoder covering the full prefix/ext-type/
// size-class table a self-delimiting recursive value codec requires.
package wire

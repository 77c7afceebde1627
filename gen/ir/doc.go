/*
Package ir holds the in-memory representation of generated visitor code.

A generation run produces a Family: a base class plus one variety subclass.
Classes carry ordered method maps; method bodies are small expression trees.
The IR is deliberately host-language-neutral; back-ends (package render)
turn it into source text, and package runtime can execute it directly.

A Family is immutable once assembled; the synthesis machinery in package gen
is the only writer, and it hands out the finished value.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ir

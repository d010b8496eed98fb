// Package plugin is the BlockArt application context.
//
// A Plugin is created once per process through a Loader. Creating it
// initializes the collaborator modules in the order they were given and
// attaches the startup sequence to the host's "init" action. When the host
// fires "init", the sequence runs once:
//
//  1. fire "blockart_before_init"
//  2. store Version under "_blockart_version"
//  3. load the "blockart" text domain from <dir>/languages
//  4. register the BlockArt settings
//  5. fire "blockart_init"
//
// Listeners of "blockart_init" may read settings; everything they depend on
// is in place by then.
//
// A Plugin must not be copied, and it has no exported state and no decoding
// methods, so it cannot be rebuilt from a serialized form. The only way to
// obtain one is Loader.Get.
package plugin

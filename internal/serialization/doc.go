// Package serialization provides the .mgrd format for saving and loading
// scalar model parameters.
//
//	Format Structure:
//	  [4 bytes:  Magic "MGRD"]
//	  [4 bytes:  Version (uint32 LE)]
//	  [32 bytes: SHA-256 of the data section]
//	  [8 bytes:  Header Size (uint64 LE)]
//	  [Header: JSON metadata, one name per parameter]
//	  [Data: float64 LE, one per parameter, in header order]
//
// Example usage:
//
//	entries := []serialization.Entry{{Name: "L1-0w0", Value: 0.42}}
//	header := serialization.Header{ModelType: "MLP"}
//	if err := serialization.WriteFile("model.mgrd", header, entries); err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := serialization.ReadFile("model.mgrd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f.Entries[0].Value)
package serialization

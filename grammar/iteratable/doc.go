/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around grammars. Grammar analysis is often more straightforward to describe as
set constructions and worklists: start with a seed, add what follows from the
items already present, stop when nothing new turns up.

A Set may grow while it is being iterated. Items appended during an iteration
will be visited by the same iteration, which makes a Set a natural worklist
for least-fixed-point computations:

    S := iteratable.NewSet(0)
    S.Add(start)
    S.IterateOnce()
    for S.Next() {
        for _, x := range successors(S.Item()) {
            S.Add(x)   // will be visited later in this loop
        }
    }

Unusually, all set operations are destructive!

Items have to be comparable, as they are used as map keys.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package iteratable

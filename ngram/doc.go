// Package ngram generates n-grams, everygrams and k-skip-n-grams over a
// sequence of already tokenized items.
//
// All generators are lazy: a Generator computes one n-gram per pull and holds
// no state beyond its cursor and a read-only view of the input. Boundary
// markers are synthesized on read rather than copied into a padded buffer.
//
//	gen, err := ngram.NGrams(words, 3, ngram.WithPadding("<s>", "</s>"))
//	if err != nil {
//		return err
//	}
//	for gram := range gen.All() {
//		fmt.Println(gram)
//	}
package ngram

/*Package fingerprint identifies transposon insertion sites from the
  genomic positions of informative read tips and compares them across
  samples.

  The pipeline for one reference sequence is:

    1) Density-cluster the read-tip positions of every
       (category, sample) coordinate set, optionally refining each
       cluster hierarchically (package cluster).
    2) Buffer each cluster's extent by a fixed margin so that small
       boundary jitter between samples does not break cross-sample
       alignment.
    3) Sweep the buffered clusters of all samples and categories into
       bins of transitively overlapping extents.
    4) Within each bin, pair clusters that flank a single insertion,
       anchored on a known-element annotation when one lies within the
       join distance, or on direct proximity otherwise. Unpaired
       clusters become singleton loci.
    5) Trim the reported extents back to the true outermost member
       positions and summarize per-sample repeat-category counts.

  References are processed by parallel workers that own their data
  exclusively; a failed worker fails the whole run so that a missing
  reference can never silently under-report insertions. The collected
  loci are sorted deterministically and exposed as TSV, CSV or GFF
  lines by Result.
*/
package fingerprint

package main

import (
	"fmt"

	"qcatail"
)

func patchImage(e *env, opts *options) int {
	var tail qcatail.Trailer

	err := qcatail.ParseVersion(opts.version, &tail)
	if err != nil {
		fmt.Fprintf(e.stderr, " ! Version %s doesn't match supported 6-digits format\n", opts.version)
		msgs := qcatail.GetErrors(err)
		fmt.Fprintf(e.stderr, " ! %s\n", msgs[len(msgs)-1])
	}

	progress := func(format string, args ...interface{}) {
		if opts.verbose {
			fmt.Fprintf(e.stderr, format, args...)
		}
	}

	progress(" - Reading image\n")
	image, err := qcatail.LoadImage(e.fs, opts.inputPath)
	if err != nil {
		reportError(e.stderr, err)
		return 1
	}

	if opts.verbose {
		if hdr, err := qcatail.ReadHeader(image); err == nil {
			progress(" - %s\n", hdr)
		}
	}

	progress(" - Patching header\n")
	err = qcatail.FixChecksum(image, &tail)
	if err != nil {
		reportError(e.stderr, err)
		return 1
	}

	progress(" - Trailer version=%s product=%q key=0x%02x\n", tail.Version(), tail.Product(), tail.Key)
	progress(" - Payload digest %016x\n", qcatail.PayloadDigest(image))

	progress(" - Writing image\n")
	err = qcatail.StoreImage(e.fs, opts.outputPath, image)
	if err != nil {
		reportError(e.stderr, err)
		return 1
	}

	progress(" - Finished! Output is '%s'.\n", opts.outputPath)
	return 0
}

func showImage(e *env, inputPath string) int {
	image, err := qcatail.LoadImage(e.fs, inputPath)
	if err != nil {
		reportError(e.stderr, err)
		return 1
	}

	hdr, err := qcatail.ReadHeader(image)
	if err != nil {
		reportError(e.stderr, err)
		return 1
	}

	fmt.Fprintln(e.stdout, hdr)
	if hdr.Magic != qcatail.ImageMagic {
		fmt.Fprintf(e.stdout, "magic: 0x%08x (expected 0x%08x)\n", hdr.Magic, uint32(qcatail.ImageMagic))
	}

	if err := qcatail.VerifyHeader(image); err != nil {
		msgs := qcatail.GetErrors(err)
		fmt.Fprintf(e.stdout, "header crc: %s\n", msgs[len(msgs)-1])
	} else {
		fmt.Fprintln(e.stdout, "header crc: ok")
	}

	tail, err := qcatail.ReadTrailer(image)
	if err != nil {
		reportError(e.stderr, err)
		return 1
	}

	fmt.Fprintf(e.stdout, "trailer: version=%s product=%q pkey=0x%02x key=0x%02x\n",
		tail.Version(), tail.Product(), tail.PKey, tail.Key)
	fmt.Fprintf(e.stdout, "payload digest: %016x\n", qcatail.PayloadDigest(image))

	return 0
}

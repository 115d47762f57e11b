package awsapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/servicequotas"
)

// spotQuotaServiceCode is the service-quotas service code the quota probes
// query. All tracked family quota codes live under it.
const spotQuotaServiceCode = "ec2"

// defaultRegion anchors the global and region-listing calls when neither the
// settings document nor the shared config names one.
const defaultRegion = "us-east-1"

// RealClient implements CloudAPI using the AWS SDK.
type RealClient struct {
	ec2     *ec2.Client
	quotas  *servicequotas.Client
	iam     *iam.Client
	route53 *route53.Client
}

// LoadConfig loads the shared AWS config. profile selects a named credential
// profile ("" uses the default chain); region anchors the non-regional calls
// and may be empty.
func LoadConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if region != "" {
		cfg.Region = region
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	return cfg, nil
}

// NewRealClient creates a RealClient from the shared AWS config.
func NewRealClient(ctx context.Context, profile, region string) (*RealClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, err
	}

	return &RealClient{
		ec2:     ec2.NewFromConfig(cfg),
		quotas:  servicequotas.NewFromConfig(cfg),
		iam:     iam.NewFromConfig(cfg),
		route53: route53.NewFromConfig(cfg),
	}, nil
}

// ListRegions returns every region visible to the account in provider order.
func (c *RealClient) ListRegions(ctx context.Context) ([]Region, error) {
	out, err := c.ec2.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(true),
	})
	if err != nil {
		return nil, &ProbeError{Op: "list-regions", Err: err}
	}

	regions := make([]Region, 0, len(out.Regions))
	for _, r := range out.Regions {
		regions = append(regions, Region{
			Name:        aws.ToString(r.RegionName),
			OptInStatus: aws.ToString(r.OptInStatus),
		})
	}
	return regions, nil
}

// ListSpotQuotas returns the full EC2 quota list for one region.
func (c *RealClient) ListSpotQuotas(ctx context.Context, region string) ([]Quota, error) {
	paginator := servicequotas.NewListServiceQuotasPaginator(c.quotas, &servicequotas.ListServiceQuotasInput{
		ServiceCode: aws.String(spotQuotaServiceCode),
	})

	var quotas []Quota
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, func(o *servicequotas.Options) {
			o.Region = region
		})
		if err != nil {
			return nil, &ProbeError{Op: "list-quotas", Region: region, Err: err}
		}
		for _, q := range page.Quotas {
			quotas = append(quotas, Quota{
				Code:  aws.ToString(q.QuotaCode),
				Value: aws.ToFloat64(q.Value),
			})
		}
	}
	return quotas, nil
}

// ListAvailabilityZones returns every availability zone of one region.
func (c *RealClient) ListAvailabilityZones(ctx context.Context, region string) ([]Zone, error) {
	out, err := c.ec2.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{}, func(o *ec2.Options) {
		o.Region = region
	})
	if err != nil {
		return nil, &ProbeError{Op: "list-zones", Region: region, Err: err}
	}

	zones := make([]Zone, 0, len(out.AvailabilityZones))
	for _, z := range out.AvailabilityZones {
		zones = append(zones, Zone{
			Name:  aws.ToString(z.ZoneName),
			State: string(z.State),
		})
	}
	return zones, nil
}

// RoleExists reports whether the named IAM role exists.
func (c *RealClient) RoleExists(ctx context.Context, name string) (bool, error) {
	_, err := c.iam.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, &ProbeError{Op: "get-role", Err: err}
	}
	return true, nil
}

// GetHostedZone resolves a hosted zone id to its zone name.
func (c *RealClient) GetHostedZone(ctx context.Context, id string) (string, error) {
	out, err := c.route53.GetHostedZone(ctx, &route53.GetHostedZoneInput{Id: aws.String(id)})
	if err != nil {
		return "", &ProbeError{Op: "get-hosted-zone", Err: err}
	}
	return aws.ToString(out.HostedZone.Name), nil
}
